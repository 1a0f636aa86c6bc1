package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/pkg/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverStub struct{}

func (resolverStub) Resolve(ctx context.Context, name string) (category.Category, error) {
	if p, ok := category.ParsePredefined(name); ok {
		return category.FromPredefined(p), nil
	}
	return category.Category{}, category.ErrUnknownCategory
}

func setupRouter(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewHandler(service, resolverStub{})
	r := mux.NewRouter()
	r.HandleFunc("/api/transactions", handler.List).Methods("GET")
	r.HandleFunc("/api/transactions", handler.Create).Methods("POST")
	r.HandleFunc("/api/transactions/installments", handler.CreateInstallments).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", handler.Get).Methods("GET")
	r.HandleFunc("/api/transactions/{id}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", handler.Delete).Methods("DELETE")
	return r, teardown
}

func doRequest(r *mux.Router, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body)).WithContext(ctx)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_CreateInstallments(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	// when
	rr := doRequest(r, http.MethodPost, "/api/transactions/installments",
		`{"description":"TV","amount":"1200","startDate":"2024-01-15T00:00:00Z","installments":3,"category":"shopping","cardId":2}`)

	// then
	require.Equal(t, http.StatusCreated, rr.Code)
	var created []TransactionDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	require.Len(t, created, 3)
	assert.Equal(t, "TV (1/3)", created[0].Description)
	assert.Equal(t, "400", created[0].Amount.String())
	assert.Equal(t, "2024-03-15", created[2].Date.Format("2006-01-02"))
	assert.Equal(t, 2, *created[0].CardId)
	assert.NotNil(t, created[0].InstallmentGroupId)
}

func TestHandler_CreateInstallments_InvalidCount(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodPost, "/api/transactions/installments",
		`{"description":"TV","amount":"1200","startDate":"2024-01-15T00:00:00Z","installments":1,"category":"shopping"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_CreateAndList(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodPost, "/api/transactions",
		`{"description":"Salary","amount":5000,"date":"2024-02-01T09:00:00Z","type":"income","category":"salary"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(r, http.MethodGet, "/api/transactions?type=income", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []TransactionDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "salary", listed[0].Category)
}

func TestHandler_Create_UnknownCategory(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodPost, "/api/transactions",
		`{"description":"Toy","amount":"10","date":"2024-02-01T09:00:00Z","type":"expense","category":"gadgets"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_List_InvalidFilter(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/transactions?month=2024-13", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/transactions?type=transfer", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/transactions?cardId=abc", "").Code)
}

func TestHandler_Delete(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	rr := doRequest(r, http.MethodPost, "/api/transactions/installments",
		`{"description":"TV","amount":"1200","startDate":"2024-01-15T00:00:00Z","installments":3,"category":"shopping"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created []TransactionDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	rr = doRequest(r, http.MethodDelete, "/api/transactions/"+strconv.Itoa(created[0].Id), "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted":3}`, rr.Body.String())
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/transactions/"+strconv.Itoa(created[1].Id), "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodDelete, "/api/transactions/1?scope=all", "").Code)
}
