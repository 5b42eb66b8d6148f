package controllers

import (
	"net/http"
	"strconv"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var timetableService = services.NewTimetableService()

type TimetableController struct{}

// Query
func (t *TimetableController) GetTimetables(c *gin.Context) {
	department := c.DefaultQuery("department", "")
	section := c.DefaultQuery("section", "")
	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	timetables, errRes := timetableService.GetTimetables(department, section, year)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["timetables"] = timetables
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (t *TimetableController) GetActiveTimetable(c *gin.Context) {
	department := c.Query("department")
	section := c.DefaultQuery("section", "A")
	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	timetable, errRes := timetableService.GetActiveTimetable(department, section, year)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["timetable"] = timetable
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (t *TimetableController) NewTimetable(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var timetable *forms.TimetableForm
	if err := c.BindJSON(&timetable); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	created, errRes := timetableService.NewTimetable(timetable, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["timetable"] = created
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (t *TimetableController) UpdateTimetable(c *gin.Context) {
	idTimetable := c.Param("idTimetable")
	var timetable *forms.TimetableForm
	if err := c.BindJSON(&timetable); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	updated, errRes := timetableService.UpdateTimetable(idTimetable, timetable)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["timetable"] = updated
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (t *TimetableController) DeleteTimetable(c *gin.Context) {
	idTimetable := c.Param("idTimetable")
	if errRes := timetableService.DeleteTimetable(idTimetable); errRes != nil {
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
