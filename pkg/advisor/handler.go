package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moneta-app/moneta/internal/ai"
	"github.com/moneta-app/moneta/internal/rest"
	log "github.com/sirupsen/logrus"
)

const unavailableMessage = "The advisor is not available right now, please try again later"

type CategorizeRequestDTO struct {
	Description string           `json:"description"`
	History     []HistoryItemDTO `json:"history,omitempty"`
}

type HistoryItemDTO struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

type CategorizeResponseDTO struct {
	Category string `json:"category"`
}

type InsightRequestDTO struct {
	Summary string `json:"summary,omitempty"`
	Persona string `json:"persona,omitempty"`
}

type InsightResponseDTO struct {
	Insight string `json:"insight"`
}

type ChatRequestDTO struct {
	Messages []ai.Message `json:"messages"`
}

type ChatResponseDTO struct {
	Reply string `json:"reply"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Categorize godoc
// @Summary Suggest a category for a transaction
// @Tags Advisor
// @Accept json
// @Produce json
// @Param request body CategorizeRequestDTO true "Description and optional history"
// @Success 200 {object} CategorizeResponseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 500 {object} rest.ErrorResponse "Advisor unavailable"
// @Router /api/advisor/categorize [post]
// @Security XUserId
func (h *Handler) Categorize(w http.ResponseWriter, r *http.Request) {
	var dto CategorizeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	history := make([]HistoryItem, 0, len(dto.History))
	for _, item := range dto.History {
		history = append(history, HistoryItem{Description: item.Description, Category: item.Category})
	}

	c, err := h.service.Categorize(r.Context(), dto.Description, history)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, CategorizeResponseDTO{Category: string(c)})
}

// Insight godoc
// @Summary Daily financial insight
// @Description Builds the analysis of the current month when summary is omitted
// @Tags Advisor
// @Accept json
// @Produce json
// @Param request body InsightRequestDTO false "Analysis summary and persona"
// @Success 200 {object} InsightResponseDTO
// @Failure 500 {object} rest.ErrorResponse "Advisor unavailable"
// @Router /api/advisor/insight [post]
// @Security XUserId
func (h *Handler) Insight(w http.ResponseWriter, r *http.Request) {
	var dto InsightRequestDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
			return
		}
	}
	insight, err := h.service.Insight(r.Context(), dto.Summary, dto.Persona)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, InsightResponseDTO{Insight: insight})
}

// Chat godoc
// @Summary Chat with the financial assistant
// @Tags Advisor
// @Accept json
// @Produce json
// @Param request body ChatRequestDTO true "Conversation so far"
// @Success 200 {object} ChatResponseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid conversation"
// @Failure 500 {object} rest.ErrorResponse "Advisor unavailable"
// @Router /api/advisor/chat [post]
// @Security XUserId
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var dto ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	reply, err := h.service.Chat(r.Context(), dto.Messages)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ChatResponseDTO{Reply: reply})
}

// Gateway failures are reported without details.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyDescription), errors.Is(err, ErrInvalidConversation):
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		log.Errorf("advisor request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, unavailableMessage, "")
	}
}
