package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var eventService = services.NewEventService()

type EventController struct{}

// Query
func (e *EventController) GetEvents(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	status := c.DefaultQuery("status", "")

	events, errRes := eventService.GetEvents(status, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["events"] = events
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (e *EventController) ProposeEvent(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var event *forms.EventForm
	if err := c.BindJSON(&event); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	proposed, errRes := eventService.Propose(event, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["event"] = proposed
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (e *EventController) UpdateStatus(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idEvent := c.Param("idEvent")
	var status *forms.EventStatusForm
	if err := c.BindJSON(&status); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	event, errRes := eventService.UpdateStatus(idEvent, status, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["event"] = event
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}
