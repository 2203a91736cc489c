package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// ReplaySource serves bar windows out of a directory of CSV files, acting
// as a drop-in market data source for offline scans. Files are located as
//
//	{dataDir}/{SYMBOL}/{timeframe}/candles.csv
//	{dataDir}/{SYMBOL}_{timeframe}.csv
//
// and cached after first load.
type ReplaySource struct {
	dataDir  string
	provider *CSVProvider

	mu    sync.RWMutex
	cache map[string][]types.OHLCV
}

func NewReplaySource(dataDir string) *ReplaySource {
	return &ReplaySource{
		dataDir:  dataDir,
		provider: NewCSVProvider(),
		cache:    make(map[string][]types.OHLCV),
	}
}

// GetKlines returns the most recent bars for a symbol and timeframe,
// oldest first.
func (r *ReplaySource) GetKlines(ctx context.Context, symbol, timeframe string, limit int) ([]types.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars, err := r.load(symbol, timeframe)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}

	out := make([]types.OHLCV, len(bars))
	copy(out, bars)
	return out, nil
}

func (r *ReplaySource) load(symbol, timeframe string) ([]types.OHLCV, error) {
	key := strings.ToUpper(symbol) + ":" + timeframe

	r.mu.RLock()
	bars, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return bars, nil
	}

	path := r.findDataFile(symbol, timeframe)
	if path == "" {
		return nil, fmt.Errorf("no data file for %s %s under %s", symbol, timeframe, r.dataDir)
	}

	bars, err := r.provider.LoadData(path)
	if err != nil {
		return nil, err
	}
	if err := r.provider.ValidateData(bars); err != nil {
		return nil, fmt.Errorf("bad data in %s: %w", path, err)
	}

	r.mu.Lock()
	r.cache[key] = bars
	r.mu.Unlock()
	return bars, nil
}

func (r *ReplaySource) findDataFile(symbol, timeframe string) string {
	symbol = strings.ToUpper(symbol)

	candidates := []string{
		filepath.Join(r.dataDir, symbol, timeframe, "candles.csv"),
		filepath.Join(r.dataDir, fmt.Sprintf("%s_%s.csv", symbol, timeframe)),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ClearCache drops all cached windows, forcing a reload on next fetch
func (r *ReplaySource) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string][]types.OHLCV)
	r.mu.Unlock()
}
