package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/fx-scalper-bot/internal/engine"
	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
	"github.com/ducminhle1904/fx-scalper-bot/internal/risk"
)

// ScannerConfig represents the complete configuration for the signal scanner
type ScannerConfig struct {
	// Scan pipeline configuration
	Scan ScanConfig `json:"scan"`

	// Risk budget configuration
	Risk RiskConfig `json:"risk"`

	// Market data source configuration
	Exchange ExchangeConfig `json:"exchange"`

	// Health and metrics endpoints (optional)
	Monitoring MonitoringConfig `json:"monitoring"`

	// Scan report outputs (optional)
	Reporting ReportingConfig `json:"reporting"`

	// Per-symbol broker metadata overrides (optional). Symbols without an
	// entry get a default profile and size at minimum volume.
	Profiles []instrument.Profile `json:"profiles,omitempty"`
}

// ScanConfig holds the per-scan pipeline settings
type ScanConfig struct {
	Instruments           []string `json:"instruments"`            // Symbols to scan each cycle
	PrimaryTimeframe      string   `json:"primary_timeframe"`      // Bar interval for analysis ("5")
	ConfirmationTimeframe string   `json:"confirmation_timeframe"` // Higher timeframe for trend confirmation ("60")
	WindowSize            int      `json:"window_size"`            // Bars fetched per window
	IntervalSeconds       int      `json:"interval_seconds"`       // Seconds between scan cycles
	Quorum                int      `json:"quorum"`                 // Minimum agreeing votes for consensus
	MinConfidence         float64  `json:"min_confidence"`         // Consensus confidence floor
	UseAdaptive           bool     `json:"use_adaptive"`           // Add the regime-adaptive evaluator
	UseCrossover          bool     `json:"use_crossover"`          // Add the EMA crossover evaluator
	RegimeModelFile       string   `json:"regime_model_file"`      // Optional tuned regime thresholds
}

// RiskConfig holds the sizing budget
type RiskConfig struct {
	Balance      float64 `json:"balance"`       // Account balance for sizing
	RiskFraction float64 `json:"risk_fraction"` // Fraction of balance risked per trade
	SizingMode   string  `json:"sizing_mode"`   // "fixed_fractional" or "balance_scaled"
	MaxVolume    float64 `json:"max_volume"`    // Optional per-position cap in lots
}

// ExchangeConfig selects and configures the market data source
type ExchangeConfig struct {
	Source string        `json:"source"` // "bybit" or "csv"
	Bybit  *BybitConfig  `json:"bybit,omitempty"`
	CSV    *CSVDirConfig `json:"csv,omitempty"`
}

// BybitConfig holds Bybit API settings. Credentials fall back to the
// BYBIT_API_KEY and BYBIT_API_SECRET environment variables.
type BybitConfig struct {
	APIKey    string `json:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty"`
	Category  string `json:"category,omitempty"` // "spot", "linear", "inverse"
	Testnet   bool   `json:"testnet,omitempty"`
}

// CSVDirConfig points at a directory of bar files for offline scans
type CSVDirConfig struct {
	DataDir string `json:"data_dir"`
}

// MonitoringConfig holds the health/metrics HTTP endpoint settings
type MonitoringConfig struct {
	Enabled    bool   `json:"enabled"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

// ReportingConfig holds scan report output settings
type ReportingConfig struct {
	OutputDir string `json:"output_dir,omitempty"`
	Excel     bool   `json:"excel"`
	CSV       bool   `json:"csv"`
}

// LoadScannerConfig loads configuration from file
func LoadScannerConfig(configFile string) (*ScannerConfig, error) {
	// If config file doesn't contain path separators, look in configs/ directory
	if !strings.ContainsAny(configFile, "/\\") {
		configFile = filepath.Join("configs", configFile)
	}

	// Add .json extension if not present
	if !strings.HasSuffix(configFile, ".json") {
		configFile += ".json"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var config ScannerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for missing configuration
func (c *ScannerConfig) setDefaults() {
	if c.Scan.PrimaryTimeframe == "" {
		c.Scan.PrimaryTimeframe = "5"
	}
	if c.Scan.ConfirmationTimeframe == "" {
		c.Scan.ConfirmationTimeframe = "60"
	}
	if c.Scan.WindowSize == 0 {
		c.Scan.WindowSize = 200
	}
	if c.Scan.IntervalSeconds == 0 {
		c.Scan.IntervalSeconds = 300
	}
	if c.Scan.Quorum == 0 {
		c.Scan.Quorum = 2
	}
	if c.Scan.MinConfidence == 0 {
		c.Scan.MinConfidence = 70.0
	}

	if c.Risk.Balance == 0 {
		c.Risk.Balance = 10000.0
	}
	if c.Risk.RiskFraction == 0 {
		c.Risk.RiskFraction = 0.01
	}
	if c.Risk.SizingMode == "" {
		c.Risk.SizingMode = "fixed_fractional"
	}

	if c.Exchange.Source == "" {
		c.Exchange.Source = "bybit"
	}
	if c.Exchange.Source == "bybit" {
		if c.Exchange.Bybit == nil {
			c.Exchange.Bybit = &BybitConfig{}
		}
		if c.Exchange.Bybit.APIKey == "" {
			c.Exchange.Bybit.APIKey = os.Getenv("BYBIT_API_KEY")
		}
		if c.Exchange.Bybit.APISecret == "" {
			c.Exchange.Bybit.APISecret = os.Getenv("BYBIT_API_SECRET")
		}
		if c.Exchange.Bybit.Category == "" {
			c.Exchange.Bybit.Category = "linear"
		}
	}

	if c.Monitoring.Enabled && c.Monitoring.ListenAddr == "" {
		c.Monitoring.ListenAddr = ":8080"
	}
	if c.Reporting.OutputDir == "" {
		c.Reporting.OutputDir = "reports"
	}
}

// validate validates the configuration
func (c *ScannerConfig) validate() error {
	if len(c.Scan.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	if c.Scan.WindowSize < 50 {
		return fmt.Errorf("window size must be at least 50 bars")
	}
	if c.Scan.Quorum < 1 {
		return fmt.Errorf("quorum must be at least 1")
	}
	if c.Scan.MinConfidence < 0 || c.Scan.MinConfidence > 100 {
		return fmt.Errorf("min confidence must be between 0 and 100")
	}

	if c.Risk.Balance <= 0 {
		return fmt.Errorf("balance must be greater than 0")
	}
	if c.Risk.RiskFraction <= 0 || c.Risk.RiskFraction > 0.1 {
		return fmt.Errorf("risk fraction must be between 0 and 0.1")
	}
	if _, err := c.SizingMode(); err != nil {
		return err
	}

	switch c.Exchange.Source {
	case "bybit":
		// Credentials may be empty, kline endpoints are public
	case "csv":
		if c.Exchange.CSV == nil || c.Exchange.CSV.DataDir == "" {
			return fmt.Errorf("csv source requires a data_dir")
		}
	default:
		return fmt.Errorf("unknown market data source %q", c.Exchange.Source)
	}

	return nil
}

// SizingMode parses the configured sizing mode
func (c *ScannerConfig) SizingMode() (risk.Mode, error) {
	switch c.Risk.SizingMode {
	case "fixed_fractional":
		return risk.ModeFixedFractional, nil
	case "balance_scaled":
		return risk.ModeBalanceScaled, nil
	default:
		return 0, fmt.Errorf("unknown sizing mode %q", c.Risk.SizingMode)
	}
}

// EngineConfig converts the scan settings into the engine's config
func (c *ScannerConfig) EngineConfig() engine.Config {
	mode, _ := c.SizingMode()
	return engine.Config{
		PrimaryTimeframe:      c.Scan.PrimaryTimeframe,
		ConfirmationTimeframe: c.Scan.ConfirmationTimeframe,
		WindowSize:            c.Scan.WindowSize,
		Quorum:                c.Scan.Quorum,
		MinConfidence:         c.Scan.MinConfidence,
		SizingMode:            mode,
		UseAdaptive:           c.Scan.UseAdaptive,
		UseCrossover:          c.Scan.UseCrossover,
	}
}

// Budget converts the risk settings into a sizing budget
func (c *ScannerConfig) Budget() risk.Budget {
	return risk.Budget{
		Balance:      c.Risk.Balance,
		RiskFraction: c.Risk.RiskFraction,
		MaxVolume:    c.Risk.MaxVolume,
	}
}
