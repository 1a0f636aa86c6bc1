package recurring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/auth"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RecurringExpenseDTO struct {
	Id              int             `json:"id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Frequency       string          `json:"frequency"`
	NextTriggerDate time.Time       `json:"nextTriggerDate"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	Active          bool            `json:"active"`
}

type RunResultDTO struct {
	Processed int `json:"processed"`
}

type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (category.Category, error)
}

type Handler struct {
	service  Service
	resolver CategoryResolver
}

func NewHandler(service Service, resolver CategoryResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// List godoc
// @Summary List recurring expenses
// @Tags Recurring
// @Produce json
// @Success 200 {array} RecurringExpenseDTO
// @Router /api/recurring [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]RecurringExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, toDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get a recurring expense
// @Tags Recurring
// @Produce json
// @Param id path int true "Recurring expense ID"
// @Success 200 {object} RecurringExpenseDTO
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/recurring/{id} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(e))
}

// Create godoc
// @Summary Create a recurring expense
// @Description New recurring expenses are always active
// @Tags Recurring
// @Accept json
// @Produce json
// @Param recurring body RecurringExpenseDTO true "Recurring expense"
// @Success 201 {object} RecurringExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/recurring [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto RecurringExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	e, err := h.fromDTO(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), e)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update a recurring expense
// @Tags Recurring
// @Accept json
// @Produce json
// @Param id path int true "Recurring expense ID"
// @Param recurring body RecurringExpenseDTO true "Recurring expense"
// @Success 200 {object} RecurringExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/recurring/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var dto RecurringExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	dto.Id = id
	e, err := h.fromDTO(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), e)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a recurring expense
// @Description Transactions generated from it are kept
// @Tags Recurring
// @Param id path int true "Recurring expense ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/recurring/{id} [delete]
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

type JobHandler struct {
	service Service
	secret  string
}

func NewJobHandler(service Service, secret string) *JobHandler {
	return &JobHandler{service: service, secret: secret}
}

// Run godoc
// @Summary Roll forward due recurring expenses
// @Description Called by an external scheduler with the configured shared secret
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Bearer <secret>"
// @Success 200 {object} RunResultDTO
// @Failure 401 {object} rest.ErrorResponse "Unauthorized"
// @Failure 500 {object} rest.ErrorResponse "Job failed"
// @Router /jobs/recurring [get]
func (h *JobHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !auth.HasSecret(r, h.secret) {
		log.Warn("rejected recurring job trigger with invalid secret")
		rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	processed, err := h.service.RunDue(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Recurring job failed", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, RunResultDTO{Processed: processed})
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
	case errors.Is(err, ErrRecurringNotFound):
		rest.WriteError(w, http.StatusNotFound, "Recurring expense not found", "")
	case errors.Is(err, ErrInvalidRecurring), errors.Is(err, category.ErrUnknownCategory):
		rest.WriteError(w, http.StatusBadRequest, "Invalid recurring expense", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) fromDTO(ctx context.Context, dto RecurringExpenseDTO) (RecurringExpense, error) {
	c, err := h.resolver.Resolve(ctx, dto.Category)
	if err != nil {
		return RecurringExpense{}, err
	}
	return RecurringExpense{
		Id:              dto.Id,
		Description:     dto.Description,
		Amount:          dto.Amount,
		Category:        c,
		Frequency:       Frequency(dto.Frequency),
		NextTriggerDate: dto.NextTriggerDate,
		EndDate:         dto.EndDate,
		Active:          dto.Active,
	}, nil
}

func toDTO(e RecurringExpense) RecurringExpenseDTO {
	return RecurringExpenseDTO{
		Id:              e.Id,
		Description:     e.Description,
		Amount:          e.Amount,
		Category:        e.Category.String(),
		Frequency:       string(e.Frequency),
		NextTriggerDate: e.NextTriggerDate,
		EndDate:         e.EndDate,
		Active:          e.Active,
	}
}
