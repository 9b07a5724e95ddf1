package simulacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/simulador-financeiro/internal/config"
	"github.com/Dan9191/simulador-financeiro/internal/logging"
	"github.com/Dan9191/simulador-financeiro/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIURL = srv.URL
	cfg.HTTPTimeout = 2 * time.Second
	return NewClient(cfg, logging.Discard())
}

var scenarioA = models.SimulationRequest{PropertyValue: 400000, DownPaymentPercent: 10, ContractYears: 3}

func TestSimulate_Success(t *testing.T) {
	var got models.SimulationRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/simulacao", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valor_entrada":40000,"valor_financiado":360000,"total_a_guardar":500000,"parcela_mensal":13888.9}`))
	})

	result, err := client.Simulate(context.Background(), scenarioA)
	require.NoError(t, err)

	assert.Equal(t, scenarioA, got)
	assert.Equal(t, models.SimulationResult{
		DownPayment:       40000,
		FinancedAmount:    360000,
		TotalToSave:       500000,
		MonthlyInstalment: 13888.9,
	}, result, "figures are taken as-is, not re-derived")
}

func TestSimulate_WireFormat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"valor_imovel":       400000.0,
			"percentual_entrada": 10.0,
			"anos_contrato":      3.0,
		}, body)
		w.Write([]byte(`{"valor_entrada":1,"valor_financiado":2,"total_a_guardar":3,"parcela_mensal":4}`))
	})

	_, err := client.Simulate(context.Background(), scenarioA)
	require.NoError(t, err)
}

func TestSimulate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"validation rejected", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}},
		{"missing fields", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"valor_entrada":1}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Simulate(context.Background(), scenarioA)
			assert.ErrorIs(t, err, ErrSimulationFailed)
		})
	}
}

func TestSimulate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := config.Default()
	cfg.APIURL = srv.URL
	client := NewClient(cfg, logging.Discard())

	_, err := client.Simulate(context.Background(), scenarioA)
	assert.ErrorIs(t, err, ErrSimulationFailed)
}
