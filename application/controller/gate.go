package controller

import (
	"net/http"

	apperrors "facepass.io/application/appErrors"
	"facepass.io/application/controller/dto"
	"facepass.io/application/interfaces"
	"facepass.io/application/repository"
	"facepass.io/entities"
	server_response "facepass.io/infrastructure/serverResponse"
	"facepass.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

// VerifyEntry runs one admission attempt. Grants and denials both return 200;
// the outcome is in the body. The terminal treats anything else as a
// transport fault and fails closed on its side.
func VerifyEntry(ctx *interfaces.ApplicationContext[dto.VerifyEntryDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	result := GateOrchestrator().VerifyEntry(requestContext(ctx.Ctx), ctx.Body.EventID, ctx.Body.Email, ctx.Body.Capture)
	payload := map[string]any{
		"matched":    result.Matched,
		"confidence": result.Confidence,
		"message":    result.Message,
	}
	if result.Reason != "" {
		payload["reason"] = result.Reason
	}
	if result.Ticket != nil {
		payload["ticket"] = map[string]any{
			"id":     result.Ticket.ID,
			"type":   result.Ticket.Type,
			"holder": result.Ticket.Holder.Name,
		}
	}
	message := "entry denied"
	if result.Matched {
		message = "entry granted"
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, message, payload, nil, nil)
}

// GateStats summarises admissions for one event.
func GateStats(ctx *interfaces.ApplicationContext[any]) {
	ginCtx := ctx.Ctx.(*gin.Context)
	eventID := ginCtx.Param("id")
	if eventID == "" {
		apperrors.ErrorProcessingPayload(ctx.Ctx)
		return
	}
	reqCtx := requestContext(ctx.Ctx)
	store := repository.MongoTicketStore{}
	admitted, err := store.CountByStatus(reqCtx, eventID, entities.TicketUsed)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	active, err := store.CountByStatus(reqCtx, eventID, entities.TicketActive)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "gate stats", map[string]any{
		"admitted":   admitted,
		"notArrived": active,
	}, nil, nil)
}
