package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var userService = services.NewUserService()

type UserController struct{}

func (u *UserController) Login(c *gin.Context) {
	var login *forms.LoginForm
	if err := c.BindJSON(&login); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	data, errRes := userService.Login(login)
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

func (u *UserController) GetStaff(c *gin.Context) {
	staff, errRes := userService.GetStaff()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["staff"] = staff
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (u *UserController) CreateStaff(c *gin.Context) {
	var staff *forms.StaffForm
	if err := c.BindJSON(&staff); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	created, errRes := userService.CreateStaff(staff)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["staff"] = created
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (u *UserController) DeleteStaff(c *gin.Context) {
	idStaff := c.Param("idStaff")
	if errRes := userService.DeleteStaff(idStaff); errRes != nil {
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
