package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var notificationService = services.NewNotificationService()

type NotificationController struct{}

func (n *NotificationController) GetNotifications(c *gin.Context) {
	claims, ok := services.NewClaimsFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}
	notifications, errRes := notificationService.GetNotifications(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["notifications"] = notifications
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (n *NotificationController) MarkRead(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idNotification := c.Param("idNotification")

	if errRes := notificationService.MarkRead(idNotification, claims); errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	c.JSON(200, &res.Response{
		Success: true,
	})
}

func (n *NotificationController) MarkAllRead(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)

	if errRes := notificationService.MarkAllRead(claims); errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	c.JSON(200, &res.Response{
		Success: true,
	})
}

func (n *NotificationController) DeleteNotification(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idNotification := c.Param("idNotification")

	if errRes := notificationService.Delete(idNotification, claims); errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	c.JSON(200, &res.Response{
		Success: true,
	})
}
