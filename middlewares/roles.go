package middlewares

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// RolesMiddleware rejects users whose role is not in the allowed set
func RolesMiddleware(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := services.NewClaimsFromContext(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		for _, role := range roles {
			if claims.UserType == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
			Success: false,
			Message: "Unauthorized",
		})
	}
}
