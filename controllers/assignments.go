package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var assignmentService = services.NewAssignmentService()

type AssignmentController struct{}

// Query
func (a *AssignmentController) GetSchedule(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idInvigilator := c.DefaultQuery("invigilator", claims.ID)
	date := c.DefaultQuery("date", "")
	session := c.DefaultQuery("session", "")

	assignments, errRes := assignmentService.GetSchedule(idInvigilator, date, session)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["assignments"] = assignments
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (a *AssignmentController) NewAssignment(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var assignment *forms.AssignmentForm
	if err := c.BindJSON(&assignment); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	created, errRes := assignmentService.NewAssignment(assignment, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["assignment"] = created
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (a *AssignmentController) UpdateStatus(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAssignment := c.Param("idAssignment")
	var status *forms.AssignmentStatusForm
	if err := c.BindJSON(&status); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := assignmentService.UpdateStatus(idAssignment, status, claims); errRes != nil {
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
