package summary

import (
	"net/http"
	"time"

	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/card"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type CardUsageDTO struct {
	Name string `json:"name"`
	card.UsageDTO
}

type MonthlySummaryDTO struct {
	Month      string             `json:"month"`
	Income     decimal.Decimal    `json:"income"`
	Expense    decimal.Decimal    `json:"expense"`
	Balance    decimal.Decimal    `json:"balance"`
	Categories []CategoryTotalDTO `json:"categories"`
	Cards      []CardUsageDTO     `json:"cards"`
}

type SummaryHandler struct {
	summaryService SummaryService
	csvRenderer    SummaryRenderer
	clock          utils.Clock
}

func NewSummaryHandler(summaryService SummaryService, csvRenderer SummaryRenderer, clock utils.Clock) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, csvRenderer: csvRenderer, clock: clock}
}

// GetSummary godoc
// @Summary Monthly summary
// @Description Income, expenses, balance, expense totals per category and card usage. Responds with CSV when Accept is text/csv.
// @Tags Summary
// @Produce json
// @Produce text/csv
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} MonthlySummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month"
// @Router /api/summary [get]
// @Security XUserId
func (handler *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Accept") == "text/csv" {
		handler.ExportCsv(w, r)
		return
	}
	summary, ok := handler.load(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(summary))
}

// ExportCsv godoc
// @Summary Monthly summary as CSV
// @Tags Summary
// @Produce text/csv
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {string} string "CSV"
// @Router /api/summary/export.csv [get]
// @Security XUserId
func (handler *SummaryHandler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	summary, ok := handler.load(w, r)
	if !ok {
		return
	}
	csv, err := handler.csvRenderer.RenderSummary(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="summary-`+summary.Month+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv: %v", err)
	}
}

func (handler *SummaryHandler) load(w http.ResponseWriter, r *http.Request) (MonthlySummary, bool) {
	month := handler.clock.Now()
	if value := r.URL.Query().Get("month"); value != "" {
		parsed, err := utils.ParseMonth(value, time.Local)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "month must be in YYYY-MM format")
			return MonthlySummary{}, false
		}
		month = parsed
	}
	summary, err := handler.summaryService.GetSummary(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return MonthlySummary{}, false
	}
	return summary, true
}

func toDTO(s MonthlySummary) MonthlySummaryDTO {
	categories := make([]CategoryTotalDTO, 0, len(s.Categories))
	for _, c := range s.Categories {
		categories = append(categories, CategoryTotalDTO{Category: c.Category, Amount: c.Amount})
	}
	cards := make([]CardUsageDTO, 0, len(s.Cards))
	for _, c := range s.Cards {
		cards = append(cards, CardUsageDTO{Name: c.Name, UsageDTO: card.UsageToDTO(c.Usage)})
	}
	return MonthlySummaryDTO{
		Month:      s.Month,
		Income:     s.Income,
		Expense:    s.Expense,
		Balance:    s.Balance,
		Categories: categories,
		Cards:      cards,
	}
}
