package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"winDayAPI/middleware"
	"winDayAPI/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetMastery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	metrics, err := h.dashboardService.GetMasteryMetrics(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, metrics)
}
