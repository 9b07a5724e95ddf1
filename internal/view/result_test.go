package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/simulador-financeiro/internal/models"
)

// scenario D response
var sample = models.SimulationResult{
	DownPayment:       40000,
	FinancedAmount:    360000,
	TotalToSave:       500000,
	MonthlyInstalment: 13888.9,
}

func TestRows_FixedOrder(t *testing.T) {
	rows := Rows(sample)
	require.Len(t, rows, 4)

	assert.Equal(t, Row{Icon: "💰", Label: "Valor de entrada", Value: "R$ 40.000,00"}, rows[0])
	assert.Equal(t, Row{Icon: "🏦", Label: "Valor financiado", Value: "R$ 360.000,00"}, rows[1])
	assert.Equal(t, Row{Icon: "📈", Label: "Total a pagar", Value: "R$ 500.000,00"}, rows[2])
	assert.Equal(t, Row{Icon: "📅", Label: "Parcela mensal", Value: "R$ 13.888,90"}, rows[3])
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Resultado da Simulação", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Valor de entrada:"))
	assert.True(t, strings.HasSuffix(lines[4], "R$ 13.888,90"))
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sample, time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
