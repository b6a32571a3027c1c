package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"winDayAPI/internal/types/routine"
	"winDayAPI/middleware"
	"winDayAPI/services"
)

type RoutineHandler struct {
	routineService *services.RoutineService
}

func NewRoutineHandler(routineService *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		routineService: routineService,
	}
}

func (h *RoutineHandler) GetRoutines(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	routines, err := h.routineService.ListRoutines(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, routines)
}

func (h *RoutineHandler) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req routine.CreateRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	created, err := h.routineService.CreateRoutine(ctx, clerkID, &req)
	if err != nil {
		log.Printf("CreateRoutine Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create routine")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *RoutineHandler) DeleteRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	routineID := r.URL.Query().Get("id")
	if routineID == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'id' is required")
		return
	}

	if err := h.routineService.DeleteRoutine(ctx, clerkID, routineID); err != nil {
		if err.Error() == "routine not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Routine deleted"})
}

func (h *RoutineHandler) CompleteRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req routine.CompleteRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RoutineID == "" {
		respondWithError(w, http.StatusBadRequest, "routineId is required")
		return
	}

	if err := h.routineService.SetCompletion(ctx, clerkID, &req); err != nil {
		if err.Error() == "routine not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("CompleteRoutine Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to set routine completion")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Completion saved"})
}
