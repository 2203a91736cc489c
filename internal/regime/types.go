package regime

// Regime represents the classified market behavior mode. It is recomputed
// per scan per instrument and carries no memory across scans.
type Regime int

const (
	RegimeRanging Regime = iota
	RegimeTrending
	RegimeVolatile
)

func (r Regime) String() string {
	switch r {
	case RegimeTrending:
		return "TRENDING"
	case RegimeRanging:
		return "RANGING"
	case RegimeVolatile:
		return "VOLATILE"
	default:
		return "UNKNOWN"
	}
}
