package controller

import (
	"errors"
	"net/http"

	apperrors "facepass.io/application/appErrors"
	"facepass.io/application/controller/dto"
	"facepass.io/application/interfaces"
	"facepass.io/entities"
	server_response "facepass.io/infrastructure/serverResponse"
	"facepass.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

func CreateTicket(ctx *interfaces.ApplicationContext[dto.CreateTicketDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	ticket, err := TicketService().CreateTicket(requestContext(ctx.Ctx), ctx.Body.EventID, entities.Holder{
		Name:       ctx.Body.HolderName,
		Email:      ctx.Body.Email,
		NationalID: ctx.Body.NationalID,
	}, ctx.Body.Type)
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			apperrors.NotFoundError(ctx.Ctx, err.Error())
			return
		}
		apperrors.CustomError(ctx.Ctx, err.Error(), nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "ticket created", ticket, nil, nil)
}

func ConfirmPayment(ctx *interfaces.ApplicationContext[dto.ConfirmPaymentDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	ticket, err := TicketService().ConfirmPayment(requestContext(ctx.Ctx), ctx.Body.TicketID)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidTransition) {
			apperrors.CustomError(ctx.Ctx, "this ticket is not awaiting payment", nil)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "payment confirmed", ticket, nil, nil)
}

func EnrollFace(ctx *interfaces.ApplicationContext[dto.EnrollFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	ticket, err := TicketService().EnrollFace(requestContext(ctx.Ctx), ctx.Body.TicketID, ctx.Body.Capture)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrClaimNotFound):
			apperrors.NotFoundError(ctx.Ctx, "ticket not found")
		case errors.Is(err, entities.ErrDescriptorAlreadyBound):
			apperrors.EntityAlreadyExistsError(ctx.Ctx, "a face is already enrolled for this ticket")
		case errors.Is(err, entities.ErrInvalidTransition):
			apperrors.CustomError(ctx.Ctx, "this ticket is not ready for enrollment", nil)
		case errors.Is(err, entities.ErrCapacityExceeded):
			apperrors.CustomError(ctx.Ctx, "this event is sold out", nil)
		case errors.Is(err, entities.ErrDescriptorInvalid):
			apperrors.ClientError(ctx.Ctx, err.Error(), nil, nil)
		case errors.Is(err, entities.ErrServiceUnavailable):
			apperrors.ExternalDependencyError(ctx.Ctx, "biometric", "503", err)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face enrolled, ticket is active", ticket, nil, nil)
}

func ExpireTicket(ctx *interfaces.ApplicationContext[dto.ExpireTicketDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	err := TicketService().ExpireTicket(requestContext(ctx.Ctx), ctx.Body.TicketID)
	if err != nil {
		if errors.Is(err, entities.ErrClaimNotFound) {
			apperrors.NotFoundError(ctx.Ctx, "ticket not found")
			return
		}
		if errors.Is(err, entities.ErrInvalidTransition) {
			apperrors.CustomError(ctx.Ctx, "this ticket cannot be expired", nil)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "ticket expired", nil, nil, nil)
}

func GetTicket(ctx *interfaces.ApplicationContext[any]) {
	ginCtx := ctx.Ctx.(*gin.Context)
	ticketID := ginCtx.Param("id")
	if ticketID == "" {
		apperrors.ErrorProcessingPayload(ctx.Ctx)
		return
	}
	ticket, err := TicketService().Tickets.FindByID(requestContext(ctx.Ctx), ticketID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if ticket == nil {
		apperrors.NotFoundError(ctx.Ctx, "ticket not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "ticket retrieved", ticket, nil, nil)
}
