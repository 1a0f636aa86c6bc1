package card

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CardDTO struct {
	Id         int             `json:"id"`
	Name       string          `json:"name"`
	TotalLimit decimal.Decimal `json:"totalLimit"`
	Color      string          `json:"color"`
	ClosingDay int             `json:"closingDay"`
	Kind       string          `json:"kind"`
}

type UsageDTO struct {
	CardId    int             `json:"cardId"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Available decimal.Decimal `json:"available"`
	Percent   decimal.Decimal `json:"percent"`
}

type CardBillDTO struct {
	CardId int             `json:"cardId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthlyBillDTO struct {
	Month string          `json:"month"`
	Cards []CardBillDTO   `json:"cards"`
	Total decimal.Decimal `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List cards
// @Tags Card
// @Produce json
// @Success 200 {array} CardDTO
// @Router /api/cards [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing cards")
	cards, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		dtos = append(dtos, toDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get a card
// @Tags Card
// @Produce json
// @Param cardId path int true "Card ID"
// @Success 200 {object} CardDTO
// @Failure 404 {object} rest.ErrorResponse "Card not found"
// @Router /api/cards/{cardId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cardId, ok := pathCardId(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), cardId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(c))
}

// Create godoc
// @Summary Create a card
// @Tags Card
// @Accept json
// @Produce json
// @Param card body CardDTO true "Card"
// @Success 201 {object} CardDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid card"
// @Router /api/cards [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating card")
	var dto CardDTO
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
// @Summary Update a card
// @Tags Card
// @Accept json
// @Produce json
// @Param cardId path int true "Card ID"
// @Param card body CardDTO true "Card"
// @Success 200 {object} CardDTO
// @Router /api/cards/{cardId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	cardId, ok := pathCardId(w, r)
	if !ok {
		return
	}
	var dto CardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	dto.Id = cardId
	updated, err := h.service.Update(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a card
// @Description Transactions charged to the card are kept
// @Tags Card
// @Param cardId path int true "Card ID"
// @Success 204 "No Content"
// @Router /api/cards/{cardId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	cardId, ok := pathCardId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), cardId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Usage godoc
// @Summary Card usage
// @Description Lifetime spend, available limit and usage percentage of a card
// @Tags Card
// @Produce json
// @Param cardId path int true "Card ID"
// @Success 200 {object} UsageDTO
// @Failure 404 {object} rest.ErrorResponse "Card not found"
// @Failure 422 {object} rest.ErrorResponse "Card limit is zero"
// @Router /api/cards/{cardId}/usage [get]
// @Security XUserId
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	cardId, ok := pathCardId(w, r)
	if !ok {
		return
	}
	usage, err := h.service.Usage(r.Context(), cardId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, UsageToDTO(usage))
}

// Bills godoc
// @Summary Projected monthly bills
// @Tags Card
// @Produce json
// @Param months query int false "Number of months starting with the current one (1-24, default 6)"
// @Success 200 {array} MonthlyBillDTO
// @Router /api/cards/bills [get]
// @Security XUserId
func (h *Handler) Bills(w http.ResponseWriter, r *http.Request) {
	months, ok := queryMonths(w, r)
	if !ok {
		return
	}
	bills, err := h.service.ProjectBills(r.Context(), months)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]MonthlyBillDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, billToDTO(b))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// BillsChart godoc
// @Summary Projected monthly bills as a bar chart
// @Tags Card
// @Produce image/png
// @Param months query int false "Number of months (1-24, default 6)"
// @Success 200 {file} image/png
// @Router /api/cards/bills/chart.png [get]
// @Security XUserId
func (h *Handler) BillsChart(w http.ResponseWriter, r *http.Request) {
	months, ok := queryMonths(w, r)
	if !ok {
		return
	}
	bills, err := h.service.ProjectBills(r.Context(), months)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	currency := user.DefaultCurrency
	if u, err := user.CurrentUser(r.Context()); err == nil && u.Settings.Currency != "" {
		currency = u.Settings.Currency
	}

	png, err := RenderBillsChart(bills, currency)
	if err != nil {
		log.Errorf("failed to render bills chart: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Errorf("failed to write chart: %v", err)
	}
}

func pathCardId(w http.ResponseWriter, r *http.Request) (int, bool) {
	cardId, err := strconv.Atoi(mux.Vars(r)["cardId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return cardId, true
}

func queryMonths(w http.ResponseWriter, r *http.Request) (int, bool) {
	value := r.URL.Query().Get("months")
	if value == "" {
		return DefaultProjectionMonths, true
	}
	months, err := strconv.Atoi(value)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid months", err.Error())
		return 0, false
	}
	return months, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCardNotFound):
		rest.WriteError(w, http.StatusNotFound, "Card not found", "")
	case errors.Is(err, ErrInvalidLimit):
		rest.WriteError(w, http.StatusUnprocessableEntity, "Card limit must be greater than zero", "")
	case errors.Is(err, ErrInvalidCard), errors.Is(err, ErrInvalidHorizon):
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(c CreditCard) CardDTO {
	return CardDTO{
		Id:         c.Id,
		Name:       c.Name,
		TotalLimit: c.TotalLimit,
		Color:      c.Color,
		ClosingDay: c.ClosingDay,
		Kind:       string(c.Kind),
	}
}

func fromDTO(dto CardDTO) CreditCard {
	return CreditCard{
		Id:         dto.Id,
		Name:       dto.Name,
		TotalLimit: dto.TotalLimit,
		Color:      dto.Color,
		ClosingDay: dto.ClosingDay,
		Kind:       Kind(dto.Kind),
	}
}

// UsageToDTO rounds the percentage to two decimals for display.
func UsageToDTO(u Usage) UsageDTO {
	return UsageDTO{
		CardId:    u.CardId,
		Limit:     u.Limit,
		Spent:     u.Spent,
		Available: u.Available,
		Percent:   u.Percent.Round(2),
	}
}

func billToDTO(b MonthlyBill) MonthlyBillDTO {
	cards := make([]CardBillDTO, 0, len(b.Cards))
	for _, c := range b.Cards {
		cards = append(cards, CardBillDTO{CardId: c.CardId, Name: c.Name, Amount: c.Amount})
	}
	return MonthlyBillDTO{Month: b.Month, Cards: cards, Total: b.Total}
}
