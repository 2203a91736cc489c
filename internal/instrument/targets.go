package instrument

// PipTargets holds the default take-profit/stop-loss distances (in pips)
// for an instrument class, plus the bounds any dynamically computed distance
// is clamped into.
type PipTargets struct {
	TPPips float64 `json:"tp_pips"`
	SLPips float64 `json:"sl_pips"`

	SLMin float64 `json:"sl_min"`
	SLMax float64 `json:"sl_max"`
	TPMin float64 `json:"tp_min"`
	TPMax float64 `json:"tp_max"`
}

// classTargets is the data-driven replacement for the per-symbol literal
// tables: one row per instrument class.
var classTargets = map[Class]PipTargets{
	ClassMajor:  {TPPips: 18, SLPips: 9, SLMin: 5, SLMax: 20, TPMin: 8, TPMax: 30},
	ClassCross:  {TPPips: 22, SLPips: 11, SLMin: 5, SLMax: 25, TPMin: 8, TPMax: 40},
	ClassMetal:  {TPPips: 45, SLPips: 22, SLMin: 10, SLMax: 60, TPMin: 15, TPMax: 90},
	ClassEnergy: {TPPips: 55, SLPips: 27, SLMin: 12, SLMax: 70, TPMin: 18, TPMax: 100},
}

// symbolTargets carries the handful of per-symbol overrides that differ from
// their class default (wider-ranging crosses, GBPUSD).
var symbolTargets = map[string]PipTargets{
	"GBPUSD": {TPPips: 20, SLPips: 10, SLMin: 5, SLMax: 20, TPMin: 8, TPMax: 30},
	"EURJPY": {TPPips: 28, SLPips: 14, SLMin: 5, SLMax: 25, TPMin: 8, TPMax: 40},
	"GBPJPY": {TPPips: 35, SLPips: 17, SLMin: 6, SLMax: 30, TPMin: 10, TPMax: 50},
	"AUDJPY": {TPPips: 28, SLPips: 14, SLMin: 5, SLMax: 25, TPMin: 8, TPMax: 40},
	"GBPAUD": {TPPips: 28, SLPips: 14, SLMin: 5, SLMax: 25, TPMin: 8, TPMax: 40},
	"EURCHF": {TPPips: 20, SLPips: 10, SLMin: 5, SLMax: 25, TPMin: 8, TPMax: 40},
}

// TargetsFor returns the pip targets for a symbol, preferring per-symbol
// overrides and falling back to the class table.
func TargetsFor(symbol string) PipTargets {
	if t, ok := symbolTargets[symbol]; ok {
		return t
	}
	return classTargets[ClassOf(symbol)]
}

// ClampSL bounds a stop-loss distance into the instrument's allowed range.
// Applying the clamp twice yields the same result as once.
func (t PipTargets) ClampSL(slPips float64) float64 {
	return clamp(slPips, t.SLMin, t.SLMax)
}

// ClampTP bounds a take-profit distance into the instrument's allowed range.
func (t PipTargets) ClampTP(tpPips float64) float64 {
	return clamp(tpPips, t.TPMin, t.TPMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
