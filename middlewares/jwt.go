package middlewares

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// JWTMiddleware validates the bearer token and stores the claims under the
// user key for the handlers
func JWTMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := services.ExtractToken(ctx.GetHeader("Authorization"))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		claims, err := services.VerifyToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		ctx.Set("user", claims)
		ctx.Next()
	}
}
