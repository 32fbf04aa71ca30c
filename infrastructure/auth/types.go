package auth

import "facepass.io/entities"

type ClaimsData struct {
	OperatorID string
	Email      string
	Role       entities.OperatorRole
	ExpiresAt  int64
	IssuedAt   int64
}
