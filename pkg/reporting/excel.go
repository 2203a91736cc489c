package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/fx-scalper-bot/internal/engine"
)

// ExcelReporter writes a scan report workbook
type ExcelReporter struct{}

func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// excelStyles holds the style IDs used across sheets
type excelStyles struct {
	header int
	buy    int
	sell   int
	number int
}

// WriteScanXLSX writes all decisions of one scan cycle to an Excel file,
// with actionable signals on a separate sheet
func (r *ExcelReporter) WriteScanXLSX(decisions []engine.Decision, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const decisionsSheet = "Decisions"
	const signalsSheet = "Signals"

	fx.SetSheetName(fx.GetSheetName(0), decisionsSheet)
	if _, err := fx.NewSheet(signalsSheet); err != nil {
		return err
	}

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeDecisionsSheet(fx, decisionsSheet, decisions, styles); err != nil {
		return err
	}

	actionable := make([]engine.Decision, 0, len(decisions))
	for _, d := range decisions {
		if d.Actionable() {
			actionable = append(actionable, d)
		}
	}
	if err := r.writeDecisionsSheet(fx, signalsSheet, actionable, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.buy, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.sell, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.number, err = fx.NewStyle(&excelize.Style{NumFmt: 2})
	return styles, err
}

func (r *ExcelReporter) writeDecisionsSheet(fx *excelize.File, sheet string, decisions []engine.Decision, styles excelStyles) error {
	headers := []string{"Timestamp", "Instrument", "Action", "Confidence", "TP Pips", "SL Pips", "R:R", "Volume", "Regime", "Reason"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return err
		}
	}

	for i, d := range decisions {
		row := i + 2
		values := []interface{}{
			d.Timestamp.Format(time.RFC3339),
			d.Instrument,
			d.Action.String(),
			d.Confidence,
			d.TPPips,
			d.SLPips,
			d.RiskReward,
			d.Volume,
			d.Regime.String(),
			d.Reason,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}

		firstNum, err := excelize.CoordinatesToCellName(4, row)
		if err != nil {
			return err
		}
		lastNum, err := excelize.CoordinatesToCellName(8, row)
		if err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, firstNum, lastNum, styles.number); err != nil {
			return err
		}

		actionCell, err := excelize.CoordinatesToCellName(3, row)
		if err != nil {
			return err
		}
		switch d.Action.String() {
		case "BUY":
			if err := fx.SetCellStyle(sheet, actionCell, actionCell, styles.buy); err != nil {
				return err
			}
		case "SELL":
			if err := fx.SetCellStyle(sheet, actionCell, actionCell, styles.sell); err != nil {
				return err
			}
		}
	}

	if err := fx.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	if err := fx.SetColWidth(sheet, "J", "J", 45); err != nil {
		return err
	}
	return nil
}
