package summary

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*SummaryHandler, func()) {
	teardown := setup(t)
	return NewSummaryHandler(summaryService, NewCsvSummaryRenderer(), clock), teardown
}

func TestSummaryHandler_GetSummary(t *testing.T) {
	handler, teardown := setupHandler(t)
	defer teardown()
	transactionsStub.transactions = sampleTransactions()
	cardsStub.cards, cardsStub.usages = goldCard()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?month=2024-03", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.GetSummary(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var dto MonthlySummaryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
	assert.Equal(t, "2024-03", dto.Month)
	assert.Equal(t, "1300", dto.Expense.String())
	require.Len(t, dto.Categories, 3)
	assert.Equal(t, "housing", dto.Categories[0].Category)
	require.Len(t, dto.Cards, 1)
	assert.Equal(t, "Gold", dto.Cards[0].Name)
	assert.Equal(t, 1, dto.Cards[0].CardId)
}

func TestSummaryHandler_InvalidMonth(t *testing.T) {
	handler, teardown := setupHandler(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?month=03-2024", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.GetSummary(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSummaryHandler_Csv(t *testing.T) {
	handler, teardown := setupHandler(t)
	defer teardown()
	transactionsStub.transactions = sampleTransactions()

	t.Run("export endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/summary/export.csv?month=2024-03", nil).WithContext(ctx)
		rr := httptest.NewRecorder()
		handler.ExportCsv(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "summary-2024-03.csv")
		assert.True(t, strings.HasPrefix(rr.Body.String(), "Date,Description,Type,Category,Amount,Card\n"))
		assert.Contains(t, rr.Body.String(), "Balance,1700.00\n")
	})

	t.Run("accept header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/summary?month=2024-03", nil).WithContext(ctx)
		req.Header.Set("Accept", "text/csv")
		rr := httptest.NewRecorder()
		handler.GetSummary(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "housing,900.00\n")
	})
}
