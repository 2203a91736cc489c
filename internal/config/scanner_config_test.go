package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/fx-scalper-bot/internal/risk"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scanner.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScannerConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"scan": {"instruments": ["EURUSD", "GBPUSD"]},
		"exchange": {"source": "csv", "csv": {"data_dir": "data"}}
	}`)

	cfg, err := LoadScannerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "5", cfg.Scan.PrimaryTimeframe)
	assert.Equal(t, "60", cfg.Scan.ConfirmationTimeframe)
	assert.Equal(t, 200, cfg.Scan.WindowSize)
	assert.Equal(t, 300, cfg.Scan.IntervalSeconds)
	assert.Equal(t, 2, cfg.Scan.Quorum)
	assert.Equal(t, 70.0, cfg.Scan.MinConfidence)

	assert.Equal(t, 10000.0, cfg.Risk.Balance)
	assert.Equal(t, 0.01, cfg.Risk.RiskFraction)
	assert.Equal(t, "fixed_fractional", cfg.Risk.SizingMode)
}

func TestLoadScannerConfigRequiresInstruments(t *testing.T) {
	path := writeConfig(t, `{
		"scan": {"instruments": []},
		"exchange": {"source": "csv", "csv": {"data_dir": "data"}}
	}`)

	_, err := LoadScannerConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instrument")
}

func TestLoadScannerConfigRejectsBadRiskFraction(t *testing.T) {
	path := writeConfig(t, `{
		"scan": {"instruments": ["EURUSD"]},
		"risk": {"risk_fraction": 0.5},
		"exchange": {"source": "csv", "csv": {"data_dir": "data"}}
	}`)

	_, err := LoadScannerConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk fraction")
}

func TestLoadScannerConfigRejectsUnknownSource(t *testing.T) {
	path := writeConfig(t, `{
		"scan": {"instruments": ["EURUSD"]},
		"exchange": {"source": "carrier-pigeon"}
	}`)

	_, err := LoadScannerConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown market data source")
}

func TestLoadScannerConfigCSVRequiresDataDir(t *testing.T) {
	path := writeConfig(t, `{
		"scan": {"instruments": ["EURUSD"]},
		"exchange": {"source": "csv"}
	}`)

	_, err := LoadScannerConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_dir")
}

func TestLoadScannerConfigMissingFile(t *testing.T) {
	_, err := LoadScannerConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestSizingModeParsing(t *testing.T) {
	cfg := &ScannerConfig{Risk: RiskConfig{SizingMode: "balance_scaled"}}
	mode, err := cfg.SizingMode()
	require.NoError(t, err)
	assert.Equal(t, risk.ModeBalanceScaled, mode)

	cfg.Risk.SizingMode = "martingale"
	_, err = cfg.SizingMode()
	require.Error(t, err)
}

func TestEngineConfigConversion(t *testing.T) {
	path := writeConfig(t, `{
		"scan": {
			"instruments": ["EURUSD"],
			"quorum": 3,
			"min_confidence": 80,
			"use_adaptive": true,
			"use_crossover": true
		},
		"exchange": {"source": "csv", "csv": {"data_dir": "data"}}
	}`)

	cfg, err := LoadScannerConfig(path)
	require.NoError(t, err)

	ec := cfg.EngineConfig()
	assert.Equal(t, 3, ec.Quorum)
	assert.Equal(t, 80.0, ec.MinConfidence)
	assert.True(t, ec.UseAdaptive)
	assert.True(t, ec.UseCrossover)
	assert.Equal(t, risk.ModeFixedFractional, ec.SizingMode)

	budget := cfg.Budget()
	assert.Equal(t, 10000.0, budget.Balance)
	assert.Equal(t, 0.01, budget.RiskFraction)
}
