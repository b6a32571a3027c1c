package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"winDayAPI/internal/datekey"
	"winDayAPI/internal/types/win"
	"winDayAPI/middleware"
	"winDayAPI/services"
)

// WinHandler exposes the win/streak engine: marking a day won, the per-date
// status + eligibility view, streaks, win history and the month calendar.
type WinHandler struct {
	winService      *services.WinService
	statusService   *services.StatusService
	calendarService *services.CalendarService
}

func NewWinHandler(winService *services.WinService, statusService *services.StatusService, calendarService *services.CalendarService) *WinHandler {
	return &WinHandler{
		winService:      winService,
		statusService:   statusService,
		calendarService: calendarService,
	}
}

func (h *WinHandler) MarkWon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req win.MarkWonRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := h.winService.MarkWon(ctx, clerkID, req.Date); err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		log.Printf("MarkWon Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to mark day won, please try again")
		return
	}

	middleware.WinsMarkedTotal.Inc()
	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Day marked as won"})
}

// GetDay returns the full per-date view: won flag, six-component status,
// calendar dot count and the eligibility gate. Defaults to today.
func (h *WinHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	dateKey := r.URL.Query().Get("date")
	if dateKey == "" {
		dateKey = datekey.TodayKey()
	}
	if _, err := datekey.Parse(dateKey); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	status, eligibility, err := h.statusService.GetDay(ctx, clerkID, dateKey)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	won, err := h.winService.WonOn(ctx, clerkID, dateKey)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, &win.DayResponse{
		Date:           dateKey,
		Won:            won,
		Status:         status,
		CompletedCount: status.CompletedCount(),
		Eligibility:    eligibility,
	})
}

func (h *WinHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	streak, err := h.winService.GetStreak(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, streak)
}

func (h *WinHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	history, err := h.winService.GetHistory(ctx, clerkID)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func (h *WinHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	now := datekey.Today()
	year := now.Year()
	month := int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			respondWithError(w, http.StatusBadRequest, "Invalid month")
			return
		}
		month = parsed
	}

	cal, err := h.calendarService.GetCalendar(ctx, clerkID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			respondWithError(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, cal)
}
