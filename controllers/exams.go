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
var examService = services.NewExamService()

type ExamController struct{}

// Query
func (e *ExamController) GetExams(c *gin.Context) {
	department := c.DefaultQuery("department", "")
	examType := c.DefaultQuery("exam_type", "")
	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	exams, errRes := examService.GetExams(department, examType, year)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["exams"] = exams
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (e *ExamController) GetExam(c *gin.Context) {
	idExam := c.Param("idExam")
	exam, errRes := examService.GetExam(idExam)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["exam"] = exam
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (e *ExamController) GetStudentExams(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	exams, errRes := examService.GetStudentExams(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["exams"] = exams
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (e *ExamController) NewExam(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var exam *forms.ExamForm
	if err := c.BindJSON(&exam); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	created, errRes := examService.NewExam(exam, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["exam"] = created
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// GenerateSchedule builds a timetable preview without persisting it
func (e *ExamController) GenerateSchedule(c *gin.Context) {
	var schedule *forms.ScheduleForm
	if err := c.BindJSON(&schedule); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	result, errRes := examService.GenerateSchedule(schedule)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["schedule"] = result
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (e *ExamController) ReleaseSchedule(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var schedule *forms.ScheduleForm
	if err := c.BindJSON(&schedule); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	result, errRes := examService.ReleaseSchedule(schedule, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["schedule"] = result
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}
