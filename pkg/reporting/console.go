package reporting

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/fx-scalper-bot/internal/engine"
)

// ConsoleReporter renders scan results as a terminal table
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a console reporter writing to stdout
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a console reporter writing to w
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

// PrintScan renders one scan cycle's decisions
func (r *ConsoleReporter) PrintScan(decisions []engine.Decision, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("SCAN RESULTS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Action", "Conf", "TP", "SL", "R:R", "Volume", "Regime", "Reason"})

	actionable := 0
	for _, d := range decisions {
		if d.Actionable() {
			actionable++
			t.AppendRow(table.Row{
				d.Instrument,
				d.Action.String(),
				fmt.Sprintf("%.1f%%", d.Confidence),
				fmt.Sprintf("%.1f", d.TPPips),
				fmt.Sprintf("%.1f", d.SLPips),
				fmt.Sprintf("%.2f", d.RiskReward),
				fmt.Sprintf("%.2f", d.Volume),
				d.Regime.String(),
				d.Reason,
			})
		} else {
			t.AppendRow(table.Row{
				d.Instrument, d.Action.String(), "-", "-", "-", "-", "-",
				d.Regime.String(), d.Reason,
			})
		}
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 8, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignCenter},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 9, WidthMax: 45, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintf(r.out, "📊 %d scanned, %d actionable in %.2fs\n\n",
		len(decisions), actionable, elapsed.Seconds())
}
