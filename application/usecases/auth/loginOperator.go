package auth_usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facepass.io/application/constants"
	"facepass.io/application/repository"
	"facepass.io/entities"
	"facepass.io/infrastructure/auth"
	"facepass.io/infrastructure/cryptography"
	"facepass.io/infrastructure/database/repository/cache"
	"facepass.io/infrastructure/logger"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginOperator verifies an operator's credentials and mints a session token.
// The token hash is cached for the session lifetime so sessions can be revoked
// server side.
func LoginOperator(ctx context.Context, email string, password string) (*string, *entities.Operator, error) {
	operatorRepo := repository.OperatorRepo()
	operator, err := operatorRepo.FindOneByFilter(ctx, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return nil, nil, err
	}
	if operator == nil || operator.Deactivated {
		return nil, nil, ErrInvalidCredentials
	}
	if !cryptography.CryptoHahser.VerifyHashData(operator.Password, password) {
		logger.Warning("failed operator login attempt", logger.LoggerOptions{
			Key:  "email",
			Data: email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now()
	ttl := time.Duration(constants.OPERATOR_SESSION_TTL_HOURS) * time.Hour
	token, err := auth.GenerateAuthToken(auth.ClaimsData{
		OperatorID: operator.ID,
		Email:      operator.Email,
		Role:       operator.Role,
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(ttl).Unix(),
	})
	if err != nil {
		return nil, nil, err
	}

	hashedToken, err := cryptography.CryptoHahser.HashString(*token, nil)
	if err != nil {
		return nil, nil, err
	}
	if !cache.Cache.CreateEntry(fmt.Sprintf("%s-access", operator.ID), string(hashedToken), ttl) {
		return nil, nil, errors.New("could not persist session")
	}
	operatorRepo.UpdatePartialByFilter(ctx, map[string]interface{}{
		"_id": operator.ID,
	}, map[string]interface{}{
		"lastLoginAt": now,
	})
	return token, operator, nil
}
