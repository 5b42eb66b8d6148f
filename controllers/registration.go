package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var registrationService = services.NewRegistrationService()

type RegistrationController struct{}

// Query
func (r *RegistrationController) GetRequests(c *gin.Context) {
	status := c.DefaultQuery("status", "")
	role := c.DefaultQuery("role", "")
	search := c.DefaultQuery("search", "")

	requests, errRes := registrationService.GetRequests(status, role, search)
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

func (r *RegistrationController) GetStats(c *gin.Context) {
	stats, errRes := registrationService.GetStats()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["stats"] = stats
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// CheckStatus is public. Applicants poll it while their request is reviewed
func (r *RegistrationController) CheckStatus(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: "indique un email",
		})
		return
	}
	data, errRes := registrationService.CheckStatus(email)
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
func (r *RegistrationController) Submit(c *gin.Context) {
	var request *forms.RegistrationRequestForm
	if err := c.BindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	submitted, errRes := registrationService.Submit(request)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["request"] = submitted
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (r *RegistrationController) Approve(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idRequest := c.Param("idRequest")
	var review *forms.ReviewRequestForm
	if err := c.BindJSON(&review); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	user, errRes := registrationService.Approve(idRequest, review, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["user"] = user
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (r *RegistrationController) Reject(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idRequest := c.Param("idRequest")
	var review *forms.ReviewRequestForm
	if err := c.BindJSON(&review); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	request, errRes := registrationService.Reject(idRequest, review, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["request"] = request
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}
