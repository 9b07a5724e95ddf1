package view

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/Dan9191/simulador-financeiro/internal/utils"
	"github.com/go-pdf/fpdf"
)

// Row is one labeled line of the result panel
type Row struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rows projects a result into the four display rows, always in this order
func Rows(result models.SimulationResult) []Row {
	return []Row{
		{Icon: "💰", Label: "Valor de entrada", Value: utils.FormatCurrencyDisplay(result.DownPayment)},
		{Icon: "🏦", Label: "Valor financiado", Value: utils.FormatCurrencyDisplay(result.FinancedAmount)},
		{Icon: "📈", Label: "Total a pagar", Value: utils.FormatCurrencyDisplay(result.TotalToSave)},
		{Icon: "📅", Label: "Parcela mensal", Value: utils.FormatCurrencyDisplay(result.MonthlyInstalment)},
	}
}

// RenderText writes the rows as aligned plain text
func RenderText(w io.Writer, result models.SimulationResult) error {
	if _, err := fmt.Fprintln(w, "Resultado da Simulação"); err != nil {
		return err
	}
	for _, row := range Rows(result) {
		if _, err := fmt.Fprintf(w, "%-18s %s\n", row.Label+":", row.Value); err != nil {
			return err
		}
	}
	return nil
}

const (
	pageWidth    = 210.0
	marginLeft   = 20.0
	marginRight  = 20.0
	marginTop    = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// RenderPDF lays the rows out on a single A4 page for printing
func RenderPDF(result models.SimulationResult, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetTitle("Resultado da Simulação", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, tr("Simulador de Financiamento"), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 13)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(contentWidth, 8, tr("Resultado da Simulação"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetTextColor(50, 50, 50)
	labelWidth := contentWidth * 0.6
	for _, row := range Rows(result) {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(labelWidth, 10, tr(row.Label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(contentWidth-labelWidth, 10, tr(row.Value), "1", 1, "R", true, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentWidth, 6, tr("Gerado em "+generatedAt.Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
