package dto

import "facepass.io/entities"

type LoginOperatorDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterOperatorDTO struct {
	Name     string                `json:"name" validate:"required,name_special_char"`
	Email    string                `json:"email" validate:"required,email"`
	Password string                `json:"password" validate:"required,password"`
	Role     entities.OperatorRole `json:"role" validate:"required,oneof=USER OPERATOR MANAGER ADMIN"`
}
