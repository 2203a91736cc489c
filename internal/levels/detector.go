package levels

import (
	"math"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

const (
	pivotSpan        = 5
	defaultLookback  = 100
	clusterTolerance = 0.0005 // 0.05% relative distance merges pivots
	nearTolerance    = 0.001  // 0.1% relative distance counts as "at" a level
)

// Kind distinguishes support from resistance.
type Kind int

const (
	Support Kind = iota
	Resistance
)

func (k Kind) String() string {
	if k == Resistance {
		return "RESISTANCE"
	}
	return "SUPPORT"
}

// Level is a clustered horizontal price zone built from pivot points.
type Level struct {
	Price    float64
	Kind     Kind
	Touches  int
	LastSeen int // bar index of the most recent contributing pivot
}

// Detector extracts support and resistance levels from a bar window using
// strict 5-bar pivot highs and lows over the most recent lookback bars.
type Detector struct {
	span     int
	lookback int
}

// NewDetector creates a detector with the default 5-bar pivot span and a
// 100-bar lookback.
func NewDetector() *Detector {
	return &Detector{span: pivotSpan, lookback: defaultLookback}
}

// NewDetectorWithLookback creates a detector that only considers the last
// lookback bars of the window. A lookback of zero or less scans everything.
func NewDetectorWithLookback(lookback int) *Detector {
	return &Detector{span: pivotSpan, lookback: lookback}
}

// Detect returns up to three support and three resistance levels, most
// recent first. Pivots within 0.05% of each other collapse into one level
// whose price is the average of its members. Only the trailing lookback
// bars contribute pivots; older levels are considered stale. LastSeen is
// an index into the full window.
func (d *Detector) Detect(data []types.OHLCV) (support, resistance []Level) {
	offset := 0
	if d.lookback > 0 && len(data) > d.lookback {
		offset = len(data) - d.lookback
		data = data[offset:]
	}
	resistance = cluster(d.pivotHighs(data, offset), Resistance)
	support = cluster(d.pivotLows(data, offset), Support)
	return support, resistance
}

type pivot struct {
	price float64
	index int
}

// pivotHighs finds bars whose high strictly exceeds the highs of the five
// bars on each side. Edge bars without a full flank never qualify.
func (d *Detector) pivotHighs(data []types.OHLCV, offset int) []pivot {
	var out []pivot
	for i := d.span; i < len(data)-d.span; i++ {
		h := data[i].High
		isPivot := true
		for j := i - d.span; j <= i+d.span; j++ {
			if j == i {
				continue
			}
			if data[j].High >= h {
				isPivot = false
				break
			}
		}
		if isPivot {
			out = append(out, pivot{price: h, index: i + offset})
		}
	}
	return out
}

func (d *Detector) pivotLows(data []types.OHLCV, offset int) []pivot {
	var out []pivot
	for i := d.span; i < len(data)-d.span; i++ {
		l := data[i].Low
		isPivot := true
		for j := i - d.span; j <= i+d.span; j++ {
			if j == i {
				continue
			}
			if data[j].Low <= l {
				isPivot = false
				break
			}
		}
		if isPivot {
			out = append(out, pivot{price: l, index: i + offset})
		}
	}
	return out
}

// cluster merges pivots within the tolerance into levels and keeps the
// three most recently touched ones, newest first.
func cluster(pivots []pivot, kind Kind) []Level {
	var levels []Level
	for _, p := range pivots {
		merged := false
		for i := range levels {
			lv := &levels[i]
			if relativeDistance(p.price, lv.Price) <= clusterTolerance {
				// running average keeps the level centered on its members
				lv.Price = (lv.Price*float64(lv.Touches) + p.price) / float64(lv.Touches+1)
				lv.Touches++
				if p.index > lv.LastSeen {
					lv.LastSeen = p.index
				}
				merged = true
				break
			}
		}
		if !merged {
			levels = append(levels, Level{Price: p.price, Kind: kind, Touches: 1, LastSeen: p.index})
		}
	}

	sortByRecency(levels)
	if len(levels) > 3 {
		levels = levels[:3]
	}
	return levels
}

func sortByRecency(levels []Level) {
	for i := 1; i < len(levels); i++ {
		for j := i; j > 0 && levels[j].LastSeen > levels[j-1].LastSeen; j-- {
			levels[j], levels[j-1] = levels[j-1], levels[j]
		}
	}
}

func relativeDistance(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a - b)
	}
	return math.Abs(a-b) / math.Abs(b)
}

// IsNearLevel reports whether price sits within 0.1% of any given level.
func IsNearLevel(price float64, levels []Level) (Level, bool) {
	for _, lv := range levels {
		if relativeDistance(price, lv.Price) <= nearTolerance {
			return lv, true
		}
	}
	return Level{}, false
}
