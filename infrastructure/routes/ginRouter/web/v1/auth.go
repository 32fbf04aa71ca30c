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

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/login", func(ctx *gin.Context) {
			var body dto.LoginOperatorDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.LoginOperator(&interfaces.ApplicationContext[dto.LoginOperatorDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		authRouter.POST("/register", middlewares.OperatorAuthenticationMiddleware(entities.RoleAdmin), func(ctx *gin.Context) {
			var body dto.RegisterOperatorDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RegisterOperator(&interfaces.ApplicationContext[dto.RegisterOperatorDTO]{
				Ctx:  ctx,
				Body: &body,
			})
		})

		authRouter.POST("/logout", middlewares.OperatorAuthenticationMiddleware(entities.RoleUser), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.LogoutOperator(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})
	}
}
