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

func GateRouter(router *gin.RouterGroup) {
	gateRouter := router.Group("/gate")
	gateRouter.Use(middlewares.OperatorAuthenticationMiddleware(entities.RoleOperator))
	{
		gateRouter.POST("/verify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.VerifyEntryDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyEntry(&interfaces.ApplicationContext[dto.VerifyEntryDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
			})
		})

		gateRouter.GET("/stats/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.GateStats(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})
	}
}
