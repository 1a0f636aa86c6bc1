package google

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/pkg/card"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type ExportResultDto struct {
	Created int `json:"created"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

// ListCalendars godoc
// @Summary List Google calendars
// @Tags Google
// @Produce json
// @Success 200 {array} CalendarItemDto
// @Failure 403 "Google account not connected"
// @Router /api/integrations/google/calendars [get]
// @Security XUserId
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	calendarItems := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		calendarItems = append(calendarItems, toCalendarItemDto(c))
	}
	rest.WriteJSON(w, http.StatusOK, calendarItems)
}

// ExportBills godoc
// @Summary Add projected card bills to a Google calendar
// @Description Creates one all-day event per card and month on the card's closing day
// @Tags Google
// @Produce json
// @Param calendarId query string true "Google calendar id"
// @Param months query int false "Number of months (1-24, default 6)"
// @Success 201 {object} ExportResultDto
// @Failure 403 "Google account not connected"
// @Router /api/integrations/google/bills [post]
// @Security XUserId
func (h *Handler) ExportBills(w http.ResponseWriter, r *http.Request) {
	calendarId := r.URL.Query().Get("calendarId")
	months := card.DefaultProjectionMonths
	if value := r.URL.Query().Get("months"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid months", err.Error())
			return
		}
		months = parsed
	}

	created, err := h.service.ExportBills(r.Context(), calendarId, months)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ExportResultDto{Created: created})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, ErrMissingCalendar), errors.Is(err, card.ErrInvalidHorizon):
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func toCalendarItemDto(ci CalendarItem) CalendarItemDto {
	return CalendarItemDto{
		Id:      ci.ID,
		Summary: ci.Summary,
	}
}
