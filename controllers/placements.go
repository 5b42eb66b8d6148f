package controllers

import (
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/gin-gonic/gin"
)

// Services
var placementService = services.NewPlacementService()

type PlacementController struct{}

// Query
func (p *PlacementController) GetPlacements(c *gin.Context) {
	status := c.DefaultQuery("status", "")
	department := c.DefaultQuery("department", "")
	placementType := c.DefaultQuery("type", "")

	placements, errRes := placementService.GetPlacements(status, department, placementType)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["placements"] = placements
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (p *PlacementController) GetPlacement(c *gin.Context) {
	idPlacement := c.Param("idPlacement")
	placement, errRes := placementService.GetPlacement(idPlacement)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["placement"] = placement
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (p *PlacementController) GetStats(c *gin.Context) {
	stats, errRes := placementService.GetStats()
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

func (p *PlacementController) Search(c *gin.Context) {
	search := c.DefaultQuery("search", "")
	hits, errRes := placementService.Search(search)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["hits"] = hits
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Feed
func (p *PlacementController) NewPlacement(c *gin.Context) {
	var placement *forms.PlacementForm
	if err := c.BindJSON(&placement); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	created, errRes := placementService.NewPlacement(placement)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["placement"] = created
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (p *PlacementController) UpdatePlacement(c *gin.Context) {
	idPlacement := c.Param("idPlacement")
	var placement *forms.PlacementForm
	if err := c.BindJSON(&placement); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	updated, errRes := placementService.UpdatePlacement(idPlacement, placement)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["placement"] = updated
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (p *PlacementController) DeletePlacement(c *gin.Context) {
	idPlacement := c.Param("idPlacement")
	if errRes := placementService.DeletePlacement(idPlacement); errRes != nil {
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

func (p *PlacementController) Apply(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idPlacement := c.Param("idPlacement")

	if errRes := placementService.Apply(idPlacement, claims); errRes != nil {
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

func (p *PlacementController) SelectStudents(c *gin.Context) {
	idPlacement := c.Param("idPlacement")
	var selection *forms.SelectStudentsForm
	if err := c.BindJSON(&selection); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	updated, errRes := placementService.SelectStudents(idPlacement, selection)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["placement"] = updated
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}
