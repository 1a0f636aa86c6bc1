package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id                 int             `json:"id"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Date               time.Time       `json:"date"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	Installments       int             `json:"installments"`
	InstallmentGroupId *uuid.UUID      `json:"installmentGroupId,omitempty"`
	CardId             *int            `json:"cardId,omitempty"`
	RecurringExpenseId *int            `json:"recurringExpenseId,omitempty"`
}

type InstallmentPurchaseDTO struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    time.Time       `json:"startDate"`
	Installments int             `json:"installments"`
	Category     string          `json:"category"`
	CardId       *int            `json:"cardId,omitempty"`
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
// @Summary List transactions
// @Tags Transaction
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Param type query string false "income or expense"
// @Param cardId query int false "Card ID"
// @Success 200 {array} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/transactions [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing transactions")
	filter, err := parseFilter(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	transactions, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTOs(transactions))
}

// Get godoc
// @Summary Get a transaction
// @Tags Transaction
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionDTO
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/transactions/{id} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(t))
}

// Create godoc
// @Summary Create a transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body TransactionDTO true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/transactions [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating transaction")
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	t, err := h.fromDTO(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// CreateInstallments godoc
// @Summary Record an installment purchase
// @Description Splits the purchase into monthly expense transactions sharing one group id
// @Tags Transaction
// @Accept json
// @Produce json
// @Param purchase body InstallmentPurchaseDTO true "Purchase"
// @Success 201 {array} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/transactions/installments [post]
// @Security XUserId
func (h *Handler) CreateInstallments(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating installment purchase")
	var dto InstallmentPurchaseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	c, err := h.resolver.Resolve(r.Context(), dto.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.service.CreateInstallments(r.Context(), InstallmentPurchase{
		Description: dto.Description,
		Amount:      dto.Amount,
		StartDate:   dto.StartDate,
		Count:       dto.Installments,
		Category:    c,
		CardId:      dto.CardId,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTOs(created))
}

// Update godoc
// @Summary Update a transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param transaction body TransactionDTO true "Transaction"
// @Success 200 {object} TransactionDTO
// @Router /api/transactions/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debugf("Updating transaction %d", id)
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	dto.Id = id
	t, err := h.fromDTO(r.Context(), dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a transaction
// @Description Deleting a part of an installment purchase also deletes the later parts unless scope=single
// @Tags Transaction
// @Produce json
// @Param id path int true "Transaction ID"
// @Param scope query string false "single or following (default)"
// @Success 200 {object} object{deleted=int}
// @Router /api/transactions/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scope := DeleteFollowing
	switch s := r.URL.Query().Get("scope"); s {
	case "", string(DeleteFollowing):
	case string(DeleteSingle):
		scope = DeleteSingle
	default:
		rest.WriteError(w, http.StatusBadRequest, "Invalid scope", s)
		return
	}
	log.Debugf("Deleting transaction %d (%s)", id, scope)

	deleted, err := h.service.Delete(r.Context(), id, scope)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	var filter Filter
	if m := q.Get("month"); m != "" {
		month, err := utils.ParseMonth(m, time.Local)
		if err != nil {
			return Filter{}, err
		}
		filter.Month = &month
	}
	if t := q.Get("type"); t != "" {
		if !Type(t).Valid() {
			return Filter{}, errors.New("type must be income or expense")
		}
		filter.Type = Type(t)
	}
	if c := q.Get("cardId"); c != "" {
		cardId, err := strconv.Atoi(c)
		if err != nil {
			return Filter{}, err
		}
		filter.CardId = &cardId
	}
	return filter, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		rest.WriteError(w, http.StatusNotFound, "Transaction not found", "")
	case errors.Is(err, ErrInvalidTransaction),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidInstallmentCount),
		errors.Is(err, category.ErrUnknownCategory):
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) fromDTO(ctx context.Context, dto TransactionDTO) (Transaction, error) {
	c, err := h.resolver.Resolve(ctx, dto.Category)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Id:          dto.Id,
		Description: dto.Description,
		Amount:      dto.Amount,
		Date:        dto.Date,
		Type:        Type(dto.Type),
		Category:    c,
		CardId:      dto.CardId,
	}, nil
}

func toDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Id:                 t.Id,
		Description:        t.Description,
		Amount:             t.Amount,
		Date:               t.Date,
		Type:               string(t.Type),
		Category:           t.Category.String(),
		Installments:       t.Installments,
		InstallmentGroupId: t.InstallmentGroupId,
		CardId:             t.CardId,
		RecurringExpenseId: t.RecurringExpenseId,
	}
}

func toDTOs(transactions []Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, toDTO(t))
	}
	return dtos
}
