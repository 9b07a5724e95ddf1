package validator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Dan9191/simulador-financeiro/internal/models"
)

const (
	MinPercent = 5
	MaxPercent = 20
	MinYears   = 1
	MaxYears   = 5
)

var (
	ErrPercentOutOfRange = errors.New("Informe um valor entre 5% e 20%")
	ErrYearsOutOfRange   = errors.New("Informe entre 1 e 5 anos")
	ErrPropertyValue     = errors.New("Informe um valor de imóvel maior que zero")
)

// ValidatePercent checks the down payment percentage. Empty input is not an error.
func ValidatePercent(rawDigits string) error {
	return checkRange(rawDigits, MinPercent, MaxPercent, ErrPercentOutOfRange)
}

// ValidateYears checks the contract duration. Empty input is not an error.
func ValidateYears(rawDigits string) error {
	return checkRange(rawDigits, MinYears, MaxYears, ErrYearsOutOfRange)
}

func checkRange(rawDigits string, min, max int, outOfRange error) error {
	if rawDigits == "" {
		return nil
	}
	value, err := strconv.Atoi(rawDigits)
	if err != nil {
		return nil
	}
	if value < min || value > max {
		return outOfRange
	}
	return nil
}

// FieldErrors collects request validation failures keyed by JSON field name
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return "invalid simulation request: " + strings.Join(parts, "; ")
}

// ValidateRequest checks a decoded request against the service bounds
func ValidateRequest(req models.SimulationRequest) error {
	errs := FieldErrors{}
	if !(req.PropertyValue > 0) || math.IsInf(req.PropertyValue, 1) {
		errs["valor_imovel"] = ErrPropertyValue.Error()
	}
	if req.DownPaymentPercent < MinPercent || req.DownPaymentPercent > MaxPercent {
		errs["percentual_entrada"] = ErrPercentOutOfRange.Error()
	}
	if req.ContractYears < MinYears || req.ContractYears > MaxYears {
		errs["anos_contrato"] = ErrYearsOutOfRange.Error()
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
