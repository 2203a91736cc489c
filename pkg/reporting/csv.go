package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ducminhle1904/fx-scalper-bot/internal/engine"
)

// CSVReporter appends scan decisions to a CSV log
type CSVReporter struct{}

func NewCSVReporter() *CSVReporter {
	return &CSVReporter{}
}

var csvHeader = []string{
	"timestamp", "instrument", "action", "confidence",
	"tp_pips", "sl_pips", "risk_reward", "volume", "regime", "reason",
}

// WriteDecisions appends decisions to the file at path, writing a header
// when the file is new
func (r *CSVReporter) WriteDecisions(decisions []engine.Decision, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	info, statErr := os.Stat(path)
	isNew := statErr != nil || info.Size() == 0

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}

	for _, d := range decisions {
		row := []string{
			d.Timestamp.Format(time.RFC3339),
			d.Instrument,
			d.Action.String(),
			strconv.FormatFloat(d.Confidence, 'f', 1, 64),
			strconv.FormatFloat(d.TPPips, 'f', 1, 64),
			strconv.FormatFloat(d.SLPips, 'f', 1, 64),
			strconv.FormatFloat(d.RiskReward, 'f', 2, 64),
			strconv.FormatFloat(d.Volume, 'f', 2, 64),
			d.Regime.String(),
			d.Reason,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
