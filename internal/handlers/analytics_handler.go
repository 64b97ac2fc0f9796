package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/models"
	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Snapshot returns the dashboard metrics for the requested window,
// defaulting to month. Any aggregation failure discards the snapshot
// entirely and returns a 500; a partial payload is never sent.
func (h *AnalyticsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	if window == "" {
		window = models.WindowMonth
	}

	snap, err := h.analytics.Snapshot(r.Context(), window)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("analytics aggregation failed")
		utils.Error(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}

	utils.JSON(w, http.StatusOK, snap)
}
