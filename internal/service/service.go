package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/Dan9191/simulador-financeiro/internal/repository"
	"github.com/Dan9191/simulador-financeiro/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	// savingsRate is the share of the property value the buyer must save
	savingsRate   = decimal.RequireFromString("0.15")
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// Service computes financing simulations
type Service struct {
	cache repository.Cache
	ttl   time.Duration
	log   *logrus.Logger
	group singleflight.Group
}

// NewService initializes a new service
func NewService(cache repository.Cache, ttl time.Duration, log *logrus.Logger) *Service {
	return &Service{cache: cache, ttl: ttl, log: log}
}

// Calculate derives the four figures of a financing plan, each rounded to the cent
func Calculate(req models.SimulationRequest) models.SimulationResult {
	propertyValue := decimal.NewFromFloat(req.PropertyValue)
	downPayment := propertyValue.Mul(decimal.NewFromInt(int64(req.DownPaymentPercent))).Div(hundred)
	financed := propertyValue.Sub(downPayment)
	totalToSave := propertyValue.Mul(savingsRate)
	instalment := totalToSave.Div(decimal.NewFromInt(int64(req.ContractYears)).Mul(monthsPerYear))

	return models.SimulationResult{
		DownPayment:       toFloat(downPayment),
		FinancedAmount:    toFloat(financed),
		TotalToSave:       toFloat(totalToSave),
		MonthlyInstalment: toFloat(instalment),
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// RequestKey returns the cache key for a request
func RequestKey(req models.SimulationRequest) string {
	canonical := fmt.Sprintf("%s|%d|%d",
		decimal.NewFromFloat(req.PropertyValue).String(), req.DownPaymentPercent, req.ContractYears)
	sum := sha256.Sum256([]byte(canonical))
	return "simulacao:" + hex.EncodeToString(sum[:])
}

// Simulate validates the request and returns its figures, serving repeats from cache
func (s *Service) Simulate(ctx context.Context, req models.SimulationRequest) (models.SimulationResult, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return models.SimulationResult{}, err
	}

	key := RequestKey(req)
	v, err, shared := s.group.Do(key, func() (any, error) {
		if result, ok := s.lookup(ctx, key); ok {
			return result, nil
		}
		result := Calculate(req)
		s.store(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return models.SimulationResult{}, err
	}
	if shared {
		s.log.Debugf("Simulation %s shared with a concurrent request", key)
	}

	result := v.(models.SimulationResult)
	s.log.WithFields(logrus.Fields{
		"valor_imovel":       req.PropertyValue,
		"percentual_entrada": req.DownPaymentPercent,
		"anos_contrato":      req.ContractYears,
		"parcela_mensal":     result.MonthlyInstalment,
	}).Info("Simulation computed")
	return result, nil
}

// lookup reads a cached result; cache failures are logged and treated as misses
func (s *Service) lookup(ctx context.Context, key string) (models.SimulationResult, bool) {
	if s.cache == nil {
		return models.SimulationResult{}, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.log.Warnf("Failed to read cache: %v", err)
		}
		return models.SimulationResult{}, false
	}
	var result models.SimulationResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.log.Warnf("Discarding corrupt cache entry %s: %v", key, err)
		return models.SimulationResult{}, false
	}
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result models.SimulationResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		s.log.Warnf("Failed to encode cache entry: %v", err)
		return
	}
	// not critical if it fails
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warnf("Failed to write cache: %v", err)
	}
}
