package models

// Field identifies one of the three form inputs
type Field string

const (
	FieldPropertyValue      Field = "valorImovel"
	FieldDownPaymentPercent Field = "percentualEntrada"
	FieldContractYears      Field = "anosContrato"
)

// Error keys used by ValidationErrors
const (
	ErrorKeyPercent = "percentual"
	ErrorKeyYears   = "anos"
)

// RawInput holds the normalized digit strings typed into the form
type RawInput struct {
	PropertyValue      string `json:"valorImovel"`
	DownPaymentPercent string `json:"percentualEntrada"`
	ContractYears      string `json:"anosContrato"`
}

// ValidationErrors maps an error key to its message; absent or empty means valid
type ValidationErrors map[string]string

// Active reports whether any entry carries a message
func (v ValidationErrors) Active() bool {
	for _, msg := range v {
		if msg != "" {
			return true
		}
	}
	return false
}

// SimulationRequest is the body sent to POST /simulacao
type SimulationRequest struct {
	PropertyValue      float64 `json:"valor_imovel"`
	DownPaymentPercent int     `json:"percentual_entrada"`
	ContractYears      int     `json:"anos_contrato"`
}

// SimulationResult is the body returned by POST /simulacao
type SimulationResult struct {
	DownPayment       float64 `json:"valor_entrada"`
	FinancedAmount    float64 `json:"valor_financiado"`
	TotalToSave       float64 `json:"total_a_guardar"`
	MonthlyInstalment float64 `json:"parcela_mensal"`
}
