package ratelimit

import (
	"encoding/json"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

func TokenBucketPerIP() gin.HandlerFunc {
	message := map[string]any{
		"message": "Too many requests. Slow down and try again.",
	}
	jsonMessage, _ := json.Marshal(message)

	// Gate terminals verify in bursts, so the per-IP budget is generous.
	tlbthLimiter := tollbooth.NewLimiter(60, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Minute * 1,
	})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))

	return tollbooth_gin.LimitHandler(tlbthLimiter)
}
