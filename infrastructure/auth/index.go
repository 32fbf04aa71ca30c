package auth

import (
	"errors"
	"fmt"
	"os"

	"facepass.io/infrastructure/database/repository/cache"
	"facepass.io/infrastructure/logger"
	"github.com/golang-jwt/jwt/v4"
)

func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":        os.Getenv("JWT_ISSUER"),
		"operatorID": claimsData.OperatorID,
		"email":      claimsData.Email,
		"role":       string(claimsData.Role),
		"exp":        claimsData.ExpiresAt,
		"iat":        claimsData.IssuedAt,
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("invalid token signature used")
		}
		logger.Error("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	return token, nil
}

func SignOutOperator(id string, reason string) {
	logger.Info("operator signout initiated", logger.LoggerOptions{
		Key:  "reason",
		Data: reason,
	})
	deleted := cache.Cache.DeleteOne(fmt.Sprintf("%s-access", id))
	if !deleted {
		logger.Error("failed to sign out operator", logger.LoggerOptions{
			Key:  "id",
			Data: id,
		})
	}
}
