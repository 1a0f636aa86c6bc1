package card

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewHandler(service)
	r := mux.NewRouter()
	r.HandleFunc("/api/cards", handler.List).Methods("GET")
	r.HandleFunc("/api/cards", handler.Create).Methods("POST")
	r.HandleFunc("/api/cards/bills", handler.Bills).Methods("GET")
	r.HandleFunc("/api/cards/bills/chart.png", handler.BillsChart).Methods("GET")
	r.HandleFunc("/api/cards/{cardId}", handler.Get).Methods("GET")
	r.HandleFunc("/api/cards/{cardId}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/cards/{cardId}", handler.Delete).Methods("DELETE")
	r.HandleFunc("/api/cards/{cardId}/usage", handler.Usage).Methods("GET")
	return r, teardown
}

func doRequest(r *mux.Router, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body)).WithContext(ctx)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Usage(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodPost, "/api/cards", `{"name":"Gold","totalLimit":"1000","closingDay":10,"kind":"credit"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created CardDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	readerStub.transactions = append(readerStub.transactions, cardExpense(created.Id, "333.333", clock.Now()))

	rr = doRequest(r, http.MethodGet, "/api/cards/"+strconv.Itoa(created.Id)+"/usage", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var usage UsageDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&usage))
	assert.Equal(t, "33.33", usage.Percent.String())
	assert.Equal(t, "666.667", usage.Available.String())
}

func TestHandler_Usage_NotFound(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodGet, "/api/cards/999/usage", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Usage_ZeroLimit(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()
	// bypasses validation to simulate a legacy row
	stored, err := repoStub.Create(ctx, 1, CreditCard{Name: "Legacy", TotalLimit: decimal.Zero, ClosingDay: 1, Kind: Credit})
	require.NoError(t, err)

	rr := doRequest(r, http.MethodGet, "/api/cards/"+strconv.Itoa(stored.Id)+"/usage", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandler_Bills(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()
	rr := doRequest(r, http.MethodPost, "/api/cards", `{"name":"Gold","totalLimit":"1000","closingDay":10}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(r, http.MethodGet, "/api/cards/bills?months=2", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var bills []MonthlyBillDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&bills))
	require.Len(t, bills, 2)
	assert.Equal(t, "2024-11", bills[0].Month)
	assert.Len(t, bills[0].Cards, 1)

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/cards/bills?months=30", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/cards/bills?months=x", "").Code)
}

func TestHandler_BillsChart(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodGet, "/api/cards/bills/chart.png", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), pngSignature))
}
