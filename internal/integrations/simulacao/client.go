package simulacao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/config"
	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrSimulationFailed is the only error callers see; the cause is logged
var ErrSimulationFailed = errors.New("simulation failed")

const maxResponseBytes = 1 << 20

// Client calls the simulation service over HTTP
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new simulation service client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.APIURL + "/simulacao",
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		log: log,
	}
}

// sendRequest posts the request body and returns the raw response body
func (c *Client) sendRequest(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	c.log.Debugf("simulation response: %s", string(body))
	return body, nil
}

// parseResponse decodes the four result figures; all of them must be present
func parseResponse(body []byte) (models.SimulationResult, error) {
	var raw struct {
		DownPayment       *float64 `json:"valor_entrada"`
		FinancedAmount    *float64 `json:"valor_financiado"`
		TotalToSave       *float64 `json:"total_a_guardar"`
		MonthlyInstalment *float64 `json:"parcela_mensal"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.SimulationResult{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if raw.DownPayment == nil || raw.FinancedAmount == nil || raw.TotalToSave == nil || raw.MonthlyInstalment == nil {
		return models.SimulationResult{}, fmt.Errorf("response is missing result fields")
	}
	return models.SimulationResult{
		DownPayment:       *raw.DownPayment,
		FinancedAmount:    *raw.FinancedAmount,
		TotalToSave:       *raw.TotalToSave,
		MonthlyInstalment: *raw.MonthlyInstalment,
	}, nil
}

// Simulate sends a validated request and returns the service's figures as-is.
// Every failure is reported as ErrSimulationFailed.
func (c *Client) Simulate(ctx context.Context, req models.SimulationRequest) (models.SimulationResult, error) {
	start := time.Now()
	payload, err := json.Marshal(req)
	if err != nil {
		return models.SimulationResult{}, c.fail(req, err)
	}

	body, err := c.sendRequest(ctx, payload)
	if err != nil {
		return models.SimulationResult{}, c.fail(req, err)
	}

	result, err := parseResponse(body)
	if err != nil {
		return models.SimulationResult{}, c.fail(req, err)
	}

	c.log.WithFields(logrus.Fields{
		"valor_imovel":       req.PropertyValue,
		"percentual_entrada": req.DownPaymentPercent,
		"anos_contrato":      req.ContractYears,
		"elapsed":            time.Since(start).String(),
	}).Info("simulation completed")
	return result, nil
}

func (c *Client) fail(req models.SimulationRequest, cause error) error {
	c.log.WithFields(logrus.Fields{
		"url":                c.url,
		"valor_imovel":       req.PropertyValue,
		"percentual_entrada": req.DownPaymentPercent,
		"anos_contrato":      req.ContractYears,
	}).Errorf("Simulation error: %v", cause)
	return fmt.Errorf("%w: %v", ErrSimulationFailed, cause)
}
