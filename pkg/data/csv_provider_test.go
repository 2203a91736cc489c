package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `timestamp,open,high,low,close,volume
2026-01-05 00:00:00,1.1000,1.1010,1.0990,1.1005,1500
2026-01-05 00:05:00,1.1005,1.1020,1.1000,1.1015,1800
2026-01-05 00:10:00,1.1015,1.1025,1.1010,1.1020,1200
`

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCSVProviderLoadsBars(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "EURUSD_5.csv", sampleCSV)

	p := NewCSVProvider()
	bars, err := p.LoadData(path)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, 1.1000, bars[0].Open)
	assert.Equal(t, 1.1020, bars[2].Close)
	assert.Equal(t, 1800.0, bars[1].Volume)
	assert.True(t, bars[0].Timestamp.Before(bars[1].Timestamp))
}

func TestCSVProviderSkipsMalformedRows(t *testing.T) {
	body := `timestamp,open,high,low,close,volume
2026-01-05 00:00:00,1.1000,1.1010,1.0990,1.1005,1500
not-a-date,1.1005,1.1020,1.1000,1.1015,1800
2026-01-05 00:10:00,bad,1.1025,1.1010,1.1020,1200
2026-01-05 00:15:00,1.1020,1.1000,1.1010,1.1025,900
2026-01-05 00:20:00,1.1020,1.1030,1.1015,1.1025,1100
`
	path := writeCSV(t, t.TempDir(), "bars.csv", body)

	p := NewCSVProvider()
	bars, err := p.LoadData(path)
	require.NoError(t, err)

	// bad date, bad price, and high<low rows all dropped
	require.Len(t, bars, 2)
	assert.Equal(t, 1.1005, bars[0].Close)
	assert.Equal(t, 1.1025, bars[1].Close)
}

func TestCSVProviderEpochMillisTimestamps(t *testing.T) {
	body := `timestamp,open,high,low,close,volume
1767571200000,1.1000,1.1010,1.0990,1.1005,1500
1767571500000,1.1005,1.1020,1.1000,1.1015,1800
`
	path := writeCSV(t, t.TempDir(), "bars.csv", body)

	p := NewCSVProvider()
	bars, err := p.LoadData(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.True(t, bars[1].Timestamp.After(bars[0].Timestamp))
}

func TestCSVProviderMissingFile(t *testing.T) {
	p := NewCSVProvider()
	_, err := p.LoadData(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestValidateDataRejectsOutOfOrderTimestamps(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "bars.csv", sampleCSV)

	p := NewCSVProvider()
	bars, err := p.LoadData(path)
	require.NoError(t, err)
	require.NoError(t, p.ValidateData(bars))

	bars[2].Timestamp = bars[0].Timestamp
	err = p.ValidateData(bars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp sequence")
}

func TestReplaySourceServesWindows(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "EURUSD_5.csv", sampleCSV)

	src := NewReplaySource(dir)
	bars, err := src.GetKlines(context.Background(), "eurusd", "5", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	// last N bars, oldest first
	assert.Equal(t, 1.1015, bars[0].Close)
	assert.Equal(t, 1.1020, bars[1].Close)
}

func TestReplaySourceNestedLayout(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, filepath.Join("GBPUSD", "5", "candles.csv"), sampleCSV)

	src := NewReplaySource(dir)
	bars, err := src.GetKlines(context.Background(), "GBPUSD", "5", 0)
	require.NoError(t, err)
	assert.Len(t, bars, 3)
}

func TestReplaySourceUnknownSymbol(t *testing.T) {
	src := NewReplaySource(t.TempDir())
	_, err := src.GetKlines(context.Background(), "EURUSD", "5", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data file")
}

func TestReplaySourceHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewReplaySource(t.TempDir())
	_, err := src.GetKlines(ctx, "EURUSD", "5", 100)
	assert.ErrorIs(t, err, context.Canceled)
}
