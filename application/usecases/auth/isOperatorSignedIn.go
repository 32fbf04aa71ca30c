package auth_usecases

import (
	"fmt"
	"os"

	"facepass.io/entities"
	"facepass.io/infrastructure/auth"
	"facepass.io/infrastructure/cryptography"
	"facepass.io/infrastructure/database/repository/cache"
	"facepass.io/infrastructure/logger"
	"github.com/golang-jwt/jwt/v4"
)

// OperatorAuthResult represents the result of operator authentication
type OperatorAuthResult struct {
	IsAuthenticated bool
	OperatorID      string
	Email           string
	Role            entities.OperatorRole
	ErrorMessage    string
}

// IsOperatorSignedIn validates an operator session token against both its
// signature and the server-side session cache, so revoked sessions fail even
// before expiry.
func IsOperatorSignedIn(authToken string) OperatorAuthResult {
	result := OperatorAuthResult{
		IsAuthenticated: false,
	}

	if authToken == "" {
		result.ErrorMessage = "missing auth token"
		return result
	}

	validAccessToken, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		result.ErrorMessage = "this session has expired"
		return result
	}

	authTokenClaims := validAccessToken.Claims.(jwt.MapClaims)

	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		logger.Warning("attempt to access account with tampered jwt", logger.LoggerOptions{
			Key:  "token claims",
			Data: authTokenClaims,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	operatorID, _ := authTokenClaims["operatorID"].(string)
	validToken := cache.Cache.FindOne(fmt.Sprintf("%s-access", operatorID))
	if validToken == nil {
		result.ErrorMessage = "this session has expired"
		return result
	}
	if !cryptography.CryptoHahser.VerifyHashData(*validToken, authToken) {
		result.ErrorMessage = "this session has expired"
		return result
	}

	role := entities.OperatorRole(fmt.Sprintf("%v", authTokenClaims["role"]))
	if !role.Known() {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	result.IsAuthenticated = true
	result.OperatorID = operatorID
	result.Email, _ = authTokenClaims["email"].(string)
	result.Role = role
	return result
}
