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

func TicketRouter(router *gin.RouterGroup) {
	ticketRouter := router.Group("/tickets")
	{
		ticketRouter.POST("", func(ctx *gin.Context) {
			var body dto.CreateTicketDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateTicket(&interfaces.ApplicationContext[dto.CreateTicketDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		ticketRouter.POST("/payment/confirm", func(ctx *gin.Context) {
			var body dto.ConfirmPaymentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ConfirmPayment(&interfaces.ApplicationContext[dto.ConfirmPaymentDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		ticketRouter.POST("/enroll", func(ctx *gin.Context) {
			var body dto.EnrollFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollFace(&interfaces.ApplicationContext[dto.EnrollFaceDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		ticketRouter.POST("/expire", middlewares.OperatorAuthenticationMiddleware(entities.RoleManager), func(ctx *gin.Context) {
			var body dto.ExpireTicketDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ExpireTicket(&interfaces.ApplicationContext[dto.ExpireTicketDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		ticketRouter.GET("/:id", middlewares.OperatorAuthenticationMiddleware(entities.RoleOperator), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.GetTicket(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})
	}
}
