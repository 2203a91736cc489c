package instrument

import "strings"

// Profile describes the tradeable properties of one instrument.
// It mirrors the broker's symbol metadata and is supplied by an external
// metadata source; the engine treats it as read-only.
type Profile struct {
	Symbol     string  `json:"symbol"`
	PipSize    float64 `json:"pip_size"`
	VolumeMin  float64 `json:"volume_min"`
	VolumeMax  float64 `json:"volume_max"`
	VolumeStep float64 `json:"volume_step"`
	TickValue  float64 `json:"tick_value"` // monetary value of one tick per 1.0 lot
}

// Class groups instruments that share strategy flavors and pip targets.
type Class int

const (
	ClassMajor Class = iota
	ClassCross
	ClassMetal
	ClassEnergy
)

func (c Class) String() string {
	switch c {
	case ClassMajor:
		return "MAJOR"
	case ClassCross:
		return "CROSS"
	case ClassMetal:
		return "METAL"
	case ClassEnergy:
		return "ENERGY"
	default:
		return "UNKNOWN"
	}
}

var majorPairs = map[string]bool{
	"EURUSD": true,
	"GBPUSD": true,
	"USDJPY": true,
	"AUDUSD": true,
	"USDCAD": true,
	"USDCHF": true,
	"NZDUSD": true,
}

var energySymbols = map[string]bool{
	"XTIUSD": true,
	"XBRUSD": true,
	"USOIL":  true,
	"UKOIL":  true,
}

// ClassOf classifies a symbol into its instrument class. Unknown FX-looking
// symbols default to the cross-pair class; anything else trades like a major.
func ClassOf(symbol string) Class {
	s := strings.ToUpper(symbol)
	switch {
	case majorPairs[s]:
		return ClassMajor
	case IsMetal(s):
		return ClassMetal
	case energySymbols[s]:
		return ClassEnergy
	case len(s) == 6: // two ISO currency codes
		return ClassCross
	default:
		return ClassMajor
	}
}

// IsMetal reports whether the symbol is a gold/metal instrument.
func IsMetal(symbol string) bool {
	s := strings.ToUpper(symbol)
	return strings.Contains(s, "XAU") || strings.Contains(s, "GOLD") || strings.Contains(s, "XAG")
}

// PipSizeOf returns the pip size for a symbol: 0.01 for JPY-quoted pairs,
// 0.10 for metals, 0.0001 otherwise.
func PipSizeOf(symbol string) float64 {
	s := strings.ToUpper(symbol)
	switch {
	case IsMetal(s):
		return 0.10
	case strings.Contains(s, "JPY"):
		return 0.01
	default:
		return 0.0001
	}
}

// DefaultProfile builds a reasonable profile for a symbol when the external
// metadata source cannot supply one. Sizing then degrades to minimum volume,
// so the exact tick value here is never used for risk math.
func DefaultProfile(symbol string) Profile {
	return Profile{
		Symbol:     symbol,
		PipSize:    PipSizeOf(symbol),
		VolumeMin:  0.01,
		VolumeMax:  100.0,
		VolumeStep: 0.01,
	}
}

// PipValue returns the monetary value of one pip per 1.0 lot. The broker
// reports value per tick; a pip spans multiple ticks on 5-digit feeds.
func (p Profile) PipValue() float64 {
	if p.TickValue <= 0 {
		return 0
	}
	s := strings.ToUpper(p.Symbol)
	switch {
	case IsMetal(s):
		return p.TickValue * 10
	case strings.Contains(s, "JPY"):
		return p.TickValue * 1000
	default:
		return p.TickValue * 10
	}
}
