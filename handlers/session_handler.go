package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"winDayAPI/internal/types/session"
	"winDayAPI/middleware"
	"winDayAPI/services"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

func (h *SessionHandler) LogSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req session.LogSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !session.ValidKind(req.Kind) {
		respondWithError(w, http.StatusBadRequest, "kind must be workout, reading or meditation")
		return
	}

	logged, err := h.sessionService.LogSession(ctx, clerkID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		log.Printf("LogSession Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to log session")
		return
	}

	respondWithJSON(w, http.StatusCreated, logged)
}

func (h *SessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	kind := r.URL.Query().Get("kind")
	if !session.ValidKind(kind) {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'kind' must be workout, reading or meditation")
		return
	}

	sessions, err := h.sessionService.ListSessions(ctx, clerkID, kind, r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, sessions)
}
