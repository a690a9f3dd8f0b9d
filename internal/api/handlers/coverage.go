package handlers

import (
	"net/http"

	"tariff-sync/internal/api/models"
	"tariff-sync/internal/gaps"
	"tariff-sync/internal/model"

	"github.com/gin-gonic/gin"
)

// CoverageHandler reports the dataset's extent and internal gaps.
type CoverageHandler struct {
	ds *model.Dataset
}

func NewCoverageHandler(ds *model.Dataset) *CoverageHandler {
	return &CoverageHandler{ds: ds}
}

// GetCoverage handles GET /api/v1/coverage.
func (h *CoverageHandler) GetCoverage(c *gin.Context) {
	min, max, ok := h.ds.Bounds()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EMPTY_DATASET",
				Message: "the dataset has no records",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.CoverageResponse{
		MinDate:       min.Format(model.DateLayout),
		MaxDate:       max.Format(model.DateLayout),
		Rows:          h.ds.Len(),
		MissingByYear: gaps.GroupByYear(gaps.MissingDates(h.ds)),
	})
}
