package auth_usecases

import (
	"context"
	"errors"

	"facepass.io/application/repository"
	"facepass.io/entities"
	"facepass.io/infrastructure/cryptography"
)

var ErrEmailTaken = errors.New("an account with this email already exists")

// RegisterOperator creates a staff account with an argon2-hashed password.
// Only admins reach this path; the middleware enforces the role.
func RegisterOperator(ctx context.Context, name string, email string, password string, role entities.OperatorRole) (*entities.Operator, error) {
	if !role.Known() {
		return nil, errors.New("unknown operator role")
	}
	operatorRepo := repository.OperatorRepo()
	existing, err := operatorRepo.FindOneByFilter(ctx, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hashed, err := cryptography.CryptoHahser.HashString(password, nil)
	if err != nil {
		return nil, err
	}
	return operatorRepo.CreateOne(ctx, entities.Operator{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	})
}
