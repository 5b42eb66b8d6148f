package controllers

import (
	"io"
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var careerService = services.NewCareerService()

type CareerController struct{}

// Query
func (ca *CareerController) GetMyRequests(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	requests, errRes := careerService.GetMyRequests(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["requests"] = requests
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (ca *CareerController) GetPendingRequests(c *gin.Context) {
	requests, errRes := careerService.GetPendingRequests()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["requests"] = requests
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (ca *CareerController) SubmitStep(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var step *forms.CareerStepForm
	if err := c.BindJSON(&step); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	approval, errRes := careerService.SubmitStep(step, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["request"] = approval
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (ca *CareerController) AttachProof(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idApproval := c.Param("idApproval")

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: "adjunte un archivo de respaldo",
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	approval, errRes := careerService.AttachProof(
		idApproval,
		data,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		claims,
	)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["request"] = approval
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (ca *CareerController) Decide(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idApproval := c.Param("idApproval")
	var decision *forms.CareerDecisionForm
	if err := c.BindJSON(&decision); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	approval, errRes := careerService.Decide(idApproval, decision, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["request"] = approval
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}
