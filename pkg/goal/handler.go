package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/shopspring/decimal"
)

type GoalDTO struct {
	Id            int             `json:"id"`
	Title         string          `json:"title"`
	Icon          string          `json:"icon"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Progress      decimal.Decimal `json:"progress"`
	Reached       bool            `json:"reached"`
}

type ProgressDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List savings goals
// @Tags Goal
// @Produce json
// @Success 200 {array} GoalDTO
// @Router /api/goals [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, toDTO(g))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get a savings goal
// @Tags Goal
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} GoalDTO
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/goals/{id} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	g, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(g))
}

// Create godoc
// @Summary Create a savings goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param goal body GoalDTO true "Goal"
// @Success 201 {object} GoalDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/goals [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update a savings goal
// @Description The current amount is ignored, use the progress endpoint to change it
// @Tags Goal
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param goal body GoalDTO true "Goal"
// @Success 200 {object} GoalDTO
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/goals/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	dto.Id = id
	updated, err := h.service.Update(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a savings goal
// @Tags Goal
// @Param id path int true "Goal ID"
// @Success 204
// @Router /api/goals/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddProgress godoc
// @Summary Add saved money to a goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param progress body ProgressDTO true "Amount to add"
// @Success 200 {object} GoalDTO
// @Failure 400 {object} rest.ErrorResponse "Amount is not positive"
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/goals/{id}/progress [post]
// @Security XUserId
func (h *Handler) AddProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var dto ProgressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	g, err := h.service.AddProgress(r.Context(), id, dto.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(g))
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGoalNotFound):
		rest.WriteError(w, http.StatusNotFound, "Goal not found", "")
	case errors.Is(err, ErrInvalidGoal), errors.Is(err, ErrInvalidProgress):
		rest.WriteError(w, http.StatusBadRequest, "Invalid goal", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func fromDTO(dto GoalDTO) FinancialGoal {
	return FinancialGoal{
		Id:            dto.Id,
		Title:         dto.Title,
		Icon:          dto.Icon,
		TargetAmount:  dto.TargetAmount,
		CurrentAmount: dto.CurrentAmount,
		Deadline:      dto.Deadline,
	}
}

func toDTO(g FinancialGoal) GoalDTO {
	return GoalDTO{
		Id:            g.Id,
		Title:         g.Title,
		Icon:          g.Icon,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		Progress:      g.Progress().Round(2),
		Reached:       g.Reached(),
	}
}
