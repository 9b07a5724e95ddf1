// Package form holds the mutable state of one simulation form: the raw
// inputs, their validation errors, and the submission lifecycle.
//
// A State is owned by a single logical thread of events. It performs no
// locking; hosts that receive events concurrently must serialize them.
package form

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/Dan9191/simulador-financeiro/internal/utils"
	"github.com/Dan9191/simulador-financeiro/internal/validator"
)

// Field length caps
const (
	MaxPropertyValueDigits = 20
	MaxPercentDigits       = 2
	MaxYearsDigits         = 1
)

var (
	ErrInvalidForm        = errors.New("form is not valid")
	ErrSubmissionInFlight = errors.New("a simulation is already in progress")
	ErrUnknownField       = errors.New("unknown field")
)

// Ticket identifies one submission and the form generation it belongs to
type Ticket struct {
	Generation uint64
	Request    models.SimulationRequest
}

// State is the single owner of RawInput and ValidationErrors
type State struct {
	mode       utils.Mode
	input      models.RawInput
	errors     models.ValidationErrors
	valid      bool
	loading    bool
	generation uint64
	result     *models.SimulationResult
	lastErr    error
}

// New creates an empty form using the given property value presentation
func New(mode utils.Mode) *State {
	return &State{
		mode:   mode,
		errors: models.ValidationErrors{},
	}
}

// Mode returns the property value presentation mode
func (s *State) Mode() utils.Mode { return s.mode }

// OnFieldChange normalizes and stores a raw keystroke value, then recomputes
// errors and validity. Changes are ignored while a submission is loading.
// An accepted change dismisses the failure of the previous submission.
func (s *State) OnFieldChange(field models.Field, rawValue string) error {
	if s.loading {
		return nil
	}
	digits := utils.ParseDigits(rawValue)
	switch field {
	case models.FieldPropertyValue:
		s.input.PropertyValue = utils.Truncate(digits, MaxPropertyValueDigits)
	case models.FieldDownPaymentPercent:
		s.input.DownPaymentPercent = utils.Truncate(digits, MaxPercentDigits)
	case models.FieldContractYears:
		s.input.ContractYears = utils.Truncate(digits, MaxYearsDigits)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	s.lastErr = nil
	s.revalidate()
	return nil
}

func (s *State) revalidate() {
	errs := models.ValidationErrors{}
	if err := validator.ValidatePercent(s.input.DownPaymentPercent); err != nil {
		errs[models.ErrorKeyPercent] = err.Error()
	}
	if err := validator.ValidateYears(s.input.ContractYears); err != nil {
		errs[models.ErrorKeyYears] = err.Error()
	}
	s.errors = errs
	s.valid = s.input.PropertyValue != "" &&
		s.input.DownPaymentPercent != "" &&
		s.input.ContractYears != "" &&
		!errs.Active()
}

// IsValid reports whether all fields are filled and no error is active
func (s *State) IsValid() bool { return s.valid }

// Values returns a copy of the normalized inputs
func (s *State) Values() models.RawInput { return s.input }

// Errors returns a copy of the current validation errors
func (s *State) Errors() models.ValidationErrors {
	out := make(models.ValidationErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Display returns the value shown in the input box for a field
func (s *State) Display(field models.Field) string {
	switch field {
	case models.FieldPropertyValue:
		if s.mode == utils.ModeCents {
			return utils.ToDecimalBRL(s.input.PropertyValue)
		}
		return utils.FormatThousands(s.input.PropertyValue)
	case models.FieldDownPaymentPercent:
		return s.input.DownPaymentPercent
	case models.FieldContractYears:
		return s.input.ContractYears
	}
	return ""
}

// Request builds the service request from the current inputs
func (s *State) Request() (models.SimulationRequest, error) {
	if !s.valid {
		return models.SimulationRequest{}, ErrInvalidForm
	}
	// Both fields passed their validators, so Atoi cannot fail here.
	percent, _ := strconv.Atoi(s.input.DownPaymentPercent)
	years, _ := strconv.Atoi(s.input.ContractYears)
	return models.SimulationRequest{
		PropertyValue:      utils.DigitsToAmount(s.input.PropertyValue, s.mode),
		DownPaymentPercent: percent,
		ContractYears:      years,
	}, nil
}

// BeginSubmit enters the loading state and returns a ticket for the call
func (s *State) BeginSubmit() (Ticket, error) {
	if s.loading {
		return Ticket{}, ErrSubmissionInFlight
	}
	req, err := s.Request()
	if err != nil {
		return Ticket{}, err
	}
	s.loading = true
	s.lastErr = nil
	return Ticket{Generation: s.generation, Request: req}, nil
}

// Resolve applies the outcome of a submission. It returns false, leaving the
// form untouched, when the ticket was issued before the last Reset.
func (s *State) Resolve(t Ticket, result models.SimulationResult, err error) bool {
	if t.Generation != s.generation {
		return false
	}
	s.loading = false
	if err != nil {
		s.lastErr = err
		return true
	}
	res := result
	s.result = &res
	s.lastErr = nil
	return true
}

// Reset clears inputs, errors and any held result, and invalidates tickets
// that are still outstanding.
func (s *State) Reset() {
	s.generation++
	s.input = models.RawInput{}
	s.errors = models.ValidationErrors{}
	s.valid = false
	s.loading = false
	s.result = nil
	s.lastErr = nil
}

// Loading reports whether a submission is outstanding
func (s *State) Loading() bool { return s.loading }

// Result returns the held simulation result, if any
func (s *State) Result() (models.SimulationResult, bool) {
	if s.result == nil {
		return models.SimulationResult{}, false
	}
	return *s.result, true
}

// LastError returns the failure of the most recent submission
func (s *State) LastError() error { return s.lastErr }

// Generation returns the current reset generation
func (s *State) Generation() uint64 { return s.generation }
