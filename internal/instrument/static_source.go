package instrument

import (
	"context"
	"strings"
)

// StaticSource serves profiles from a configured list, falling back to
// DefaultProfile for symbols without an entry. It backs offline scans where
// no broker metadata feed exists.
type StaticSource struct {
	profiles map[string]Profile
}

func NewStaticSource(profiles []Profile) *StaticSource {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		if p.Symbol == "" {
			continue
		}
		if p.PipSize <= 0 {
			p.PipSize = PipSizeOf(p.Symbol)
		}
		m[strings.ToUpper(p.Symbol)] = p
	}
	return &StaticSource{profiles: m}
}

func (s *StaticSource) Profile(ctx context.Context, symbol string) (Profile, error) {
	if p, ok := s.profiles[strings.ToUpper(symbol)]; ok {
		return p, nil
	}
	return DefaultProfile(symbol), nil
}
