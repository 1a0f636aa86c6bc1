package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_CreateAndGetCurrentUser(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	handler := NewHandler(service)

	// given
	body, _ := json.Marshal(UserDTO{Uid: "abc", DisplayName: "Ana", Settings: SettingsDTO{Currency: "eur"}})
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	// when
	handler.CreateUser(rr, req)

	// then
	require.Equal(t, http.StatusCreated, rr.Code)
	var created UserDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, "EUR", created.Settings.Currency)

	stored, err := repoStub.GetUserByUid(context.Background(), "abc")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/user/current", nil)
	req = req.WithContext(WithUser(req.Context(), stored))
	rr = httptest.NewRecorder()
	handler.CurrentUser(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var current UserDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&current))
	assert.Equal(t, "Ana", current.DisplayName)
}

func TestHandler_CreateUser_InvalidBody(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()

	handler.CreateUser(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
