package routev1

import (
	apperrors "facepass.io/application/appErrors"
	"facepass.io/application/controller"
	"facepass.io/application/controller/dto"
	"facepass.io/application/interfaces"
	"facepass.io/entities"
	middlewares "facepass.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func EventRouter(router *gin.RouterGroup) {
	eventRouter := router.Group("/events")
	{
		eventRouter.GET("", func(ctx *gin.Context) {
			controller.ListActiveEvents(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
			})
		})

		eventRouter.GET("/stream", func(ctx *gin.Context) {
			controller.StreamEvents(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
			})
		})

		eventRouter.GET("/:id", func(ctx *gin.Context) {
			controller.GetEvent(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
			})
		})

		eventRouter.POST("", middlewares.OperatorAuthenticationMiddleware(entities.RoleManager), func(ctx *gin.Context) {
			var body dto.CreateEventDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateEvent(&interfaces.ApplicationContext[dto.CreateEventDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		eventRouter.PATCH("", middlewares.OperatorAuthenticationMiddleware(entities.RoleManager), func(ctx *gin.Context) {
			var body dto.UpdateEventDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateEvent(&interfaces.ApplicationContext[dto.UpdateEventDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})
	}
}
