package queue_tasks

import (
	"context"
	"time"

	"facepass.io/application/constants"
	"facepass.io/application/repository"
	"facepass.io/entities"
	"facepass.io/infrastructure/logger"
	mq_types "facepass.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

var HandleTicketExpirySweepTaskName mq_types.Queues = "ticket_expiry_sweep"

// HandleTicketExpirySweepTask moves pending payments past their hold window
// to EXPIRED. Enrolled tickets are never touched; a stale reservation only
// exists before a seat was claimed, so no attendee counter is released.
func HandleTicketExpirySweepTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-time.Duration(constants.PENDING_PAYMENT_TTL_MINUTES) * time.Minute)
	ticketRepo := repository.TicketRepo()
	swept, err := ticketRepo.UpdatePartialByFilter(ctx, map[string]interface{}{
		"status":       entities.TicketPendingPayment,
		"purchaseDate": map[string]interface{}{"$lt": cutoff},
	}, map[string]interface{}{
		"status": entities.TicketExpired,
	})
	if err != nil {
		logger.Error("an error occured while sweeping stale pending payments", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	if swept {
		logger.Info("stale pending payments expired", logger.LoggerOptions{
			Key:  "cutoff",
			Data: cutoff,
		})
	}
	return nil
}
