package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var hallTicketService = services.NewHallTicketService()

type HallTicketController struct{}

// Query
func (h *HallTicketController) GetMyHallTicket(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idExam := c.Param("idExam")

	data, errRes := hallTicketService.GetMyHallTicket(idExam, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	c.JSON(200, &res.Response{
		Success: true,
		Data:    data,
	})
}

// Feed
func (h *HallTicketController) GenerateHallTicket(c *gin.Context) {
	var ticket *forms.HallTicketForm
	if err := c.BindJSON(&ticket); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	generated, errRes := hallTicketService.GenerateHallTicket(ticket)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["hall_ticket"] = generated
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (h *HallTicketController) GenerateBulk(c *gin.Context) {
	var bulk *forms.BulkHallTicketsForm
	if err := c.BindJSON(&bulk); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	result, errRes := hallTicketService.GenerateBulk(bulk)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["result"] = result
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (h *HallTicketController) Authorize(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idExam := c.Param("idExam")

	authorized, errRes := hallTicketService.Authorize(idExam, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["authorized"] = authorized
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}
