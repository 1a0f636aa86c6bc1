package advisor_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/pkg/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(handlerFunc http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)).WithContext(ctx)
	rr := httptest.NewRecorder()
	handlerFunc(rr, req)
	return rr
}

func TestHandler_Categorize(t *testing.T) {
	service, completer, _ := newService(t)
	handler := advisor.NewHandler(service)
	completer.EXPECT().ChatJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"category":"food"}`, nil)

	rr := post(handler.Categorize, `{"description":"Burger","history":[{"description":"Pizza","category":"food"}]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var response advisor.CategorizeResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "food", response.Category)
}

func TestHandler_GenericErrorOnGatewayFailure(t *testing.T) {
	service, completer, analysis := newService(t)
	handler := advisor.NewHandler(service)
	completer.EXPECT().ChatJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("401 invalid api key sk-123"))
	analysis.EXPECT().CurrentAnalysis(gomock.Any()).Return("", errors.New("db down"))

	for _, rr := range []*httptest.ResponseRecorder{
		post(handler.Categorize, `{"description":"Burger"}`),
		post(handler.Insight, `{}`),
	} {
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		var response rest.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.NotEmpty(t, response.Error)
		assert.Empty(t, response.Details)
		assert.NotContains(t, response.Error, "sk-123")
	}
}

func TestHandler_Insight_EmptyBody(t *testing.T) {
	service, completer, analysis := newService(t)
	handler := advisor.NewHandler(service)
	analysis.EXPECT().CurrentAnalysis(gomock.Any()).Return("Month: 2024-03\n", nil)
	completer.EXPECT().Chat(gomock.Any(), gomock.Any()).Return("Keep going.", nil)

	req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.Insight(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var response advisor.InsightResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "Keep going.", response.Insight)
}

func TestHandler_Chat(t *testing.T) {
	service, completer, analysis := newService(t)
	handler := advisor.NewHandler(service)
	analysis.EXPECT().CurrentAnalysis(gomock.Any()).Return("Month: 2024-03\n", nil)
	completer.EXPECT().Chat(gomock.Any(), gomock.Any()).Return("You spent most on rent.", nil)

	rr := post(handler.Chat, `{"messages":[{"role":"user","content":"Where does my money go?"}]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var response advisor.ChatResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "You spent most on rent.", response.Reply)

	assert.Equal(t, http.StatusBadRequest, post(handler.Chat, `{"messages":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(handler.Categorize, `{"description":""}`).Code)
}
