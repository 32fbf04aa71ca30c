package controller

import (
	"io"
	"net/http"

	apperrors "facepass.io/application/appErrors"
	"facepass.io/application/controller/dto"
	"facepass.io/application/interfaces"
	"facepass.io/application/repository"
	"facepass.io/entities"
	"facepass.io/infrastructure/logger"
	server_response "facepass.io/infrastructure/serverResponse"
	"facepass.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

func CreateEvent(ctx *interfaces.ApplicationContext[dto.CreateEventDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	event, err := repository.EventRepo().CreateOne(requestContext(ctx.Ctx), entities.Event{
		Name:        ctx.Body.Name,
		Description: ctx.Body.Description,
		Location:    ctx.Body.Location,
		Date:        ctx.Body.Date,
		Image:       ctx.Body.Image,
		MaxCapacity: ctx.Body.MaxCapacity,
		IsFree:      ctx.Body.IsFree,
		Price:       ctx.Body.Price,
		IsActive:    true,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "event created", event, nil, nil)
}

func UpdateEvent(ctx *interfaces.ApplicationContext[dto.UpdateEventDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	update := map[string]interface{}{}
	if ctx.Body.IsActive != nil {
		update["isActive"] = *ctx.Body.IsActive
	}
	if ctx.Body.MaxCapacity != nil {
		update["maxCapacity"] = *ctx.Body.MaxCapacity
	}
	if ctx.Body.Price != nil {
		update["price"] = *ctx.Body.Price
	}
	if len(update) == 0 {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}
	matched, err := repository.EventRepo().UpdatePartialByFilter(requestContext(ctx.Ctx), map[string]interface{}{
		"_id": ctx.Body.EventID,
	}, update)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if !matched {
		apperrors.NotFoundError(ctx.Ctx, "event not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "event updated", nil, nil, nil)
}

func ListActiveEvents(ctx *interfaces.ApplicationContext[any]) {
	events, err := repository.MongoEventStore{}.ActiveEvents(requestContext(ctx.Ctx))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "active events", events, nil, nil)
}

func GetEvent(ctx *interfaces.ApplicationContext[any]) {
	ginCtx := ctx.Ctx.(*gin.Context)
	eventID := ginCtx.Param("id")
	if eventID == "" {
		apperrors.ErrorProcessingPayload(ctx.Ctx)
		return
	}
	event, err := repository.EventRepo().FindByID(requestContext(ctx.Ctx), eventID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if event == nil {
		apperrors.NotFoundError(ctx.Ctx, "event not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "event retrieved", map[string]any{
		"event":             event,
		"capacityRemaining": event.CapacityRemaining(),
	}, nil, nil)
}

// StreamEvents pushes the full active-event list to the client whenever the
// collection changes, over server-sent events. Clients replace their local
// copy wholesale on each message.
func StreamEvents(ctx *interfaces.ApplicationContext[any]) {
	ginCtx := ctx.Ctx.(*gin.Context)
	feed, err := repository.MongoEventStore{}.WatchActiveEvents(ginCtx.Request.Context())
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	logger.Info("event feed subscriber connected", logger.LoggerOptions{
		Key:  "remote",
		Data: ginCtx.ClientIP(),
	})
	ginCtx.Writer.Header().Set("Cache-Control", "no-cache")
	ginCtx.Stream(func(w io.Writer) bool {
		snapshot, open := <-feed
		if !open {
			return false
		}
		ginCtx.SSEvent("events", snapshot)
		return true
	})
}
