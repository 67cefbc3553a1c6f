package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/workdeck/workdeck-api/internal/errors"
	"github.com/workdeck/workdeck-api/internal/services"
)

type MetricsHandler struct {
	metricsService *services.MetricsService
}

func NewMetricsHandler(metricsService *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// GetDashboard returns status buckets and overdue project count scoped to
// the caller's visibility
func (h *MetricsHandler) GetDashboard(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	metrics, err := h.metricsService.Dashboard(actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
