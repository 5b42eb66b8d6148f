package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Services
var seatingService = services.NewSeatingService()
var exportService = services.NewExportService()

type SeatingController struct{}

// Query
func (s *SeatingController) GetSeating(c *gin.Context) {
	idExam := c.Param("idExam")
	seatings, errRes := seatingService.GetSeating(idExam)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["seating"] = seatings
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (s *SeatingController) GetRooms(c *gin.Context) {
	rooms, errRes := seatingService.GetRooms()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["rooms"] = rooms
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (s *SeatingController) GetAvailableRooms(c *gin.Context) {
	session := c.DefaultQuery("session", models.SESSION_FORENOON)
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: "fecha inválida, use el formato AAAA-MM-DD",
		})
		return
	}
	idExcludeExam := primitive.NilObjectID
	if exclude := c.DefaultQuery("exclude_exam", ""); exclude != "" {
		idExcludeExam, err = primitive.ObjectIDFromHex(exclude)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
				Success: false,
				Message: err.Error(),
			})
			return
		}
	}
	rooms, errRes := seatingService.AvailableRooms(date, session, idExcludeExam)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["rooms"] = rooms
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (s *SeatingController) NewRoom(c *gin.Context) {
	var room *forms.RoomForm
	if err := c.BindJSON(&room); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	created, errRes := seatingService.NewRoom(room)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["room"] = created
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (s *SeatingController) UpdateRoom(c *gin.Context) {
	idRoom := c.Param("idRoom")
	var room *forms.RoomForm
	if err := c.BindJSON(&room); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	updated, errRes := seatingService.UpdateRoom(idRoom, room)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["room"] = updated
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (s *SeatingController) AllocateSeating(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var allocate *forms.AllocateSeatingForm
	if err := c.BindJSON(&allocate); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	data, errRes := seatingService.Allocate(allocate, claims)
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

// ExportSeating streams the seating chart of an exam as a xlsx workbook.
// Gzip is applied when the client accepts it
func (s *SeatingController) ExportSeating(c *gin.Context) {
	idExam := c.Param("idExam")
	compress := strings.Contains(c.GetHeader("Accept-Encoding"), "gzip")

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="seating_%s.xlsx"`, idExam))
	if compress {
		c.Header("Content-Encoding", "gzip")
	}
	if errRes := exportService.ExportSeating(idExam, c.Writer, compress); errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
}
