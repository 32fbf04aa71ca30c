package middlewares

import (
	"strings"

	apperrors "facepass.io/application/appErrors"
	"facepass.io/application/interfaces"
	auth_usecases "facepass.io/application/usecases/auth"
	"facepass.io/entities"
	"github.com/gin-gonic/gin"
)

// OperatorAuthenticationMiddleware guards a route behind an operator session
// holding at least the required role.
func OperatorAuthenticationMiddleware(requiredRole entities.OperatorRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.Request.Header.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		result := auth_usecases.IsOperatorSignedIn(token)
		if !result.IsAuthenticated {
			apperrors.AuthenticationError(ctx, result.ErrorMessage)
			return
		}
		if !entities.HasPermission(result.Role, requiredRole) {
			apperrors.ForbiddenError(ctx, "you do not have permission to perform this action")
			return
		}
		appContext := &interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Header: ctx.Request.Header,
			Keys: map[string]any{
				"operatorID": result.OperatorID,
				"email":      result.Email,
				"role":       result.Role,
			},
		}
		ctx.Set("AppContext", appContext)
		ctx.Next()
	}
}
