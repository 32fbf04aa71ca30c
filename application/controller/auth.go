package controller

import (
	"errors"
	"net/http"

	apperrors "facepass.io/application/appErrors"
	"facepass.io/application/controller/dto"
	"facepass.io/application/interfaces"
	auth_usecases "facepass.io/application/usecases/auth"
	"facepass.io/infrastructure/auth"
	server_response "facepass.io/infrastructure/serverResponse"
	"facepass.io/infrastructure/validator"
)

func LoginOperator(ctx *interfaces.ApplicationContext[dto.LoginOperatorDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	token, operator, err := auth_usecases.LoginOperator(requestContext(ctx.Ctx), ctx.Body.Email, ctx.Body.Password)
	if err != nil {
		if errors.Is(err, auth_usecases.ErrInvalidCredentials) {
			apperrors.AuthenticationError(ctx.Ctx, err.Error())
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "login successful", map[string]any{
		"token": token,
		"operator": map[string]any{
			"id":    operator.ID,
			"name":  operator.Name,
			"email": operator.Email,
			"role":  operator.Role,
		},
	}, nil, nil)
}

func RegisterOperator(ctx *interfaces.ApplicationContext[dto.RegisterOperatorDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	operator, err := auth_usecases.RegisterOperator(requestContext(ctx.Ctx), ctx.Body.Name, ctx.Body.Email, ctx.Body.Password, ctx.Body.Role)
	if err != nil {
		if errors.Is(err, auth_usecases.ErrEmailTaken) {
			apperrors.EntityAlreadyExistsError(ctx.Ctx, err.Error())
			return
		}
		apperrors.CustomError(ctx.Ctx, err.Error(), nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "operator created", map[string]any{
		"id":    operator.ID,
		"name":  operator.Name,
		"email": operator.Email,
		"role":  operator.Role,
	}, nil, nil)
}

func LogoutOperator(ctx *interfaces.ApplicationContext[any]) {
	operatorID := ctx.GetStringContextData("operatorID")
	if operatorID == "" {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorised access")
		return
	}
	auth.SignOutOperator(operatorID, "operator requested signout")
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "signed out", nil, nil, nil)
}
