package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/simulador-financeiro/internal/logging"
	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/Dan9191/simulador-financeiro/internal/repository"
	"github.com/Dan9191/simulador-financeiro/internal/service"
)

func newRouter() http.Handler {
	log := logging.Discard()
	svc := service.NewService(repository.NewMemoryCache(), time.Minute, log)
	return NewHandler(svc, log).Router()
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/simulacao", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSimulateHandler_OK(t *testing.T) {
	w := post(newRouter(), `{"valor_imovel": 400000, "percentual_entrada": 10, "anos_contrato": 3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result models.SimulationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.SimulationResult{
		DownPayment:       40000,
		FinancedAmount:    360000,
		TotalToSave:       60000,
		MonthlyInstalment: 1666.67,
	}, result)
}

func TestSimulateHandler_BadRequest(t *testing.T) {
	w := post(newRouter(), `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateHandler_OutOfRange(t *testing.T) {
	w := post(newRouter(), `{"valor_imovel": 400000, "percentual_entrada": 25, "anos_contrato": 0}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Detail map[string]string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Informe um valor entre 5% e 20%", body.Detail["percentual_entrada"])
	assert.Equal(t, "Informe entre 1 e 5 anos", body.Detail["anos_contrato"])
}

func TestSimulateHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/simulacao", nil)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSimulateHandler_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/simulacao", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
