package reporting

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/fx-scalper-bot/internal/engine"
	"github.com/ducminhle1904/fx-scalper-bot/internal/regime"
	"github.com/ducminhle1904/fx-scalper-bot/internal/strategy"
)

func sampleDecisions() []engine.Decision {
	ts := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	return []engine.Decision{
		{
			Instrument: "EURUSD",
			Action:     strategy.ActionBuy,
			Confidence: 82.5,
			TPPips:     18,
			SLPips:     9,
			RiskReward: 2.0,
			Volume:     0.5,
			Regime:     regime.RegimeTrending,
			Reason:     "consensus BUY (buy 3, sell 0)",
			Timestamp:  ts,
		},
		{
			Instrument: "GBPUSD",
			Action:     strategy.ActionNone,
			Regime:     regime.RegimeRanging,
			Reason:     "no consensus (buy 1, sell 0, quorum 2)",
			Timestamp:  ts,
		},
	}
}

func TestConsoleReporterRendersTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)
	r.PrintScan(sampleDecisions(), 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "SCAN RESULTS")
	assert.Contains(t, out, "EURUSD")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "82.5%")
	assert.Contains(t, out, "GBPUSD")
	assert.Contains(t, out, "2 scanned, 1 actionable")
}

func TestCSVReporterWritesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "decisions.csv")
	r := NewCSVReporter()

	require.NoError(t, r.WriteDecisions(sampleDecisions(), path))
	require.NoError(t, r.WriteDecisions(sampleDecisions()[:1], path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	// one header plus three data rows across both writes
	require.Len(t, rows, 4)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "EURUSD", rows[1][1])
	assert.Equal(t, "BUY", rows[1][2])
	assert.Equal(t, "82.5", rows[1][3])
	assert.Equal(t, "NONE", rows[2][2])
	assert.Equal(t, "EURUSD", rows[3][1])
}

func TestExcelReporterWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "scan.xlsx")
	r := NewExcelReporter()

	require.NoError(t, r.WriteScanXLSX(sampleDecisions(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	assert.ElementsMatch(t, []string{"Decisions", "Signals"}, fx.GetSheetList())

	symbol, err := fx.GetCellValue("Decisions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", symbol)

	action, err := fx.GetCellValue("Decisions", "C2")
	require.NoError(t, err)
	assert.Equal(t, "BUY", action)

	// only the actionable decision lands on the signals sheet
	rows, err := fx.GetRows("Signals")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EURUSD", rows[1][1])
}
