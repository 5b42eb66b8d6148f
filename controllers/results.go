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
var resultService = services.NewResultService()

type ResultController struct{}

// Query
func (r *ResultController) GetBatches(c *gin.Context) {
	batches, errRes := resultService.GetBatches()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["batches"] = batches
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (r *ResultController) GetBatchDetails(c *gin.Context) {
	batchID := c.Param("batchID")
	results, errRes := resultService.GetBatchDetails(batchID)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["results"] = results
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (r *ResultController) GetMyResults(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	results, errRes := resultService.GetMyResults(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["results"] = results
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

// DownloadTemplate streams an empty workbook with the expected upload columns
func (r *ResultController) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="results_template.xlsx"`)
	if errRes := exportService.ExportResultsTemplate(c.Writer); errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
}

// Feed
func (r *ResultController) UploadBatch(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var batch *forms.ResultBatchForm
	if err := c.ShouldBind(&batch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: "adjunte un archivo xlsx",
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

	uploaded, errRes := resultService.UploadBatch(file, batch, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["batch"] = uploaded
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (r *ResultController) TogglePublish(c *gin.Context) {
	batchID := c.Param("batchID")
	published, err := strconv.ParseBool(c.DefaultQuery("published", "true"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := resultService.TogglePublish(batchID, published); errRes != nil {
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

func (r *ResultController) DeleteBatch(c *gin.Context) {
	batchID := c.Param("batchID")
	if errRes := resultService.DeleteBatch(batchID); errRes != nil {
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
