package handlers

import (
	"fmt"
	"net/http"
	"time"

	"tariff-sync/internal/api/models"
	"tariff-sync/internal/model"

	"github.com/gin-gonic/gin"
)

// PricesHandler serves read-only queries over an in-memory dataset.
type PricesHandler struct {
	ds *model.Dataset
}

func NewPricesHandler(ds *model.Dataset) *PricesHandler {
	return &PricesHandler{ds: ds}
}

// GetPrices handles GET /api/v1/prices?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Both bounds are inclusive; omitting them returns the whole dataset.
func (h *PricesHandler) GetPrices(c *gin.Context) {
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

	start, err := parseDateParam(c, "start", min)
	if err != nil {
		badParam(c, err)
		return
	}
	end, err := parseDateParam(c, "end", max)
	if err != nil {
		badParam(c, err)
		return
	}
	if start.After(end) {
		badParam(c, fmt.Errorf("start %s is after end %s",
			start.Format(model.DateLayout), end.Format(model.DateLayout)))
		return
	}

	rows := make([]models.PriceRow, 0, h.ds.Len())
	for _, rec := range h.ds.Records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		rows = append(rows, models.PriceRow{
			Date:        rec.Date.Format(model.DateLayout),
			Hour:        rec.Hour,
			ImportPrice: rec.ImportPrice,
			ExportPrice: rec.ExportPrice,
		})
	}

	c.JSON(http.StatusOK, models.PricesResponse{
		Start:  start.Format(model.DateLayout),
		End:    end.Format(model.DateLayout),
		Count:  len(rows),
		Prices: rows,
	})
}

func parseDateParam(c *gin.Context, name string, def time.Time) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", name, v)
	}
	return t, nil
}

func badParam(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "BAD_PARAM",
			Message: err.Error(),
		},
	})
}
