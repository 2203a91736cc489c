package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/fx-scalper-bot/internal/config"
	"github.com/ducminhle1904/fx-scalper-bot/internal/engine"
	scanerrors "github.com/ducminhle1904/fx-scalper-bot/internal/errors"
	"github.com/ducminhle1904/fx-scalper-bot/internal/exchange/bybit"
	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
	"github.com/ducminhle1904/fx-scalper-bot/internal/logger"
	"github.com/ducminhle1904/fx-scalper-bot/internal/monitoring"
	"github.com/ducminhle1904/fx-scalper-bot/internal/regime"
	"github.com/ducminhle1904/fx-scalper-bot/internal/risk"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/data"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/reporting"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

func main() {
	var (
		configFile = flag.String("config", "", "Configuration file (e.g., scanner.json)")
		envFile    = flag.String("env", ".env", "Environment file path (default: .env)")
		once       = flag.Bool("once", false, "Run a single scan cycle and exit")
	)
	flag.Parse()

	if *configFile == "" {
		log.Fatal("Please specify a config file with -config flag")
	}

	if err := loadEnvFile(*envFile); err != nil {
		log.Printf("Warning: Could not load .env file (%v), checking environment variables...", err)
	}

	fmt.Println("🚀 FX Signal Scanner Starting...")

	cfg, err := config.LoadScannerConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fileLog, err := logger.NewLogger("scanner")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer fileLog.Close()

	eng, check, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	health := monitoring.NewHealthChecker()
	if cfg.Monitoring.Enabled {
		startMonitoringServer(cfg.Monitoring.ListenAddr, health)
		fileLog.Info("Monitoring endpoints listening on %s", cfg.Monitoring.ListenAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifyDataSource(ctx, check, fileLog, health)

	console := reporting.NewConsoleReporter()
	fileLog.Info("Scanning %d instruments every %ds on timeframe %s",
		len(cfg.Scan.Instruments), cfg.Scan.IntervalSeconds, cfg.Scan.PrimaryTimeframe)

	runScan(ctx, eng, cfg, fileLog, console, health)
	if *once {
		fmt.Println("✅ Scan complete")
		return
	}

	ticker := time.NewTicker(time.Duration(cfg.Scan.IntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n🛑 Shutdown signal received...")
			fileLog.Status("Scanner stopped")
			fmt.Println("✅ Scanner stopped successfully")
			return
		case <-ticker.C:
			runScan(ctx, eng, cfg, fileLog, console, health)
		}
	}
}

// connectivityCheck fetches a live ticker to confirm the data source is
// reachable before the scan loop starts. Nil for offline sources.
type connectivityCheck func(ctx context.Context) (types.Ticker, error)

// buildEngine wires the configured market data source into the scan engine
func buildEngine(cfg *config.ScannerConfig) (*engine.Engine, connectivityCheck, error) {
	classifier, err := buildClassifier(cfg)
	if err != nil {
		return nil, nil, err
	}

	account := &staticAccount{budget: cfg.Budget()}

	switch cfg.Exchange.Source {
	case "bybit":
		client := bybit.NewClient(bybit.Config{
			APIKey:    cfg.Exchange.Bybit.APIKey,
			APISecret: cfg.Exchange.Bybit.APISecret,
			Category:  cfg.Exchange.Bybit.Category,
			Testnet:   cfg.Exchange.Bybit.Testnet,
		})
		meta := mergedMetadata(cfg, client)
		check := func(ctx context.Context) (types.Ticker, error) {
			return client.GetTicker(ctx, cfg.Scan.Instruments[0])
		}
		return engine.New(client, meta, account, classifier, cfg.EngineConfig()), check, nil
	case "csv":
		source := data.NewReplaySource(cfg.Exchange.CSV.DataDir)
		meta := instrument.NewStaticSource(cfg.Profiles)
		return engine.New(source, meta, account, classifier, cfg.EngineConfig()), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown market data source %q", cfg.Exchange.Source)
	}
}

// verifyDataSource records data source reachability on the health endpoint.
// A failed check degrades health but does not stop the scanner, since kline
// fetches may still recover.
func verifyDataSource(ctx context.Context, check connectivityCheck, fileLog *logger.Logger, health *monitoring.HealthChecker) {
	if check == nil {
		health.SetConnected(true)
		return
	}
	ticker, err := check(ctx)
	if err != nil {
		fileLog.Warning("Data source connectivity check failed: %v", err)
		health.SetConnected(false)
		return
	}
	fileLog.Info("Data source reachable, %s last price %.5f", ticker.Symbol, ticker.Price)
	health.SetConnected(true)
}

func buildClassifier(cfg *config.ScannerConfig) (*regime.Classifier, error) {
	if cfg.Scan.RegimeModelFile == "" {
		return regime.NewClassifier(), nil
	}
	model, err := regime.LoadModel(cfg.Scan.RegimeModelFile)
	if err != nil {
		log.Printf("Warning: regime model %s unusable (%v), using defaults", cfg.Scan.RegimeModelFile, err)
	}
	return regime.NewClassifierWithModel(model), nil
}

// mergedMetadata prefers configured profiles over exchange lookups, since
// the exchange cannot supply tick values for sizing
func mergedMetadata(cfg *config.ScannerConfig, client *bybit.Client) engine.MetadataSource {
	if len(cfg.Profiles) > 0 {
		return instrument.NewStaticSource(cfg.Profiles)
	}
	return client
}

func runScan(ctx context.Context, eng *engine.Engine, cfg *config.ScannerConfig,
	fileLog *logger.Logger, console *reporting.ConsoleReporter, health *monitoring.HealthChecker) {

	start := time.Now()
	decisions, err := eng.Scan(ctx, cfg.Scan.Instruments)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		scanErr := scanerrors.Categorize(err, "engine", "scan")
		fileLog.LogError("scan aborted", scanErr)
		health.RecordError(scanErr.Error())
		monitoring.RecordError(string(scanErr.Category))
		if scanErr.GetRecoveryAction() == scanerrors.RecoveryActionStop {
			log.Fatalf("Unrecoverable error: %v", scanErr)
		}
		return
	}

	health.MarkScan()
	monitoring.RecordScan(elapsed.Seconds())

	actionable := 0
	for _, d := range decisions {
		monitoring.UpdateRegime(d.Instrument, int(d.Regime))
		if !d.Actionable() {
			continue
		}
		actionable++
		monitoring.RecordDecision(d.Instrument, d.Action.String(), d.Confidence)
		fileLog.LogDecision(d.Instrument, d.Action.String(), d.Confidence,
			d.TPPips, d.SLPips, d.Volume, d.Regime.String(), d.Reason)
	}

	fileLog.LogScanSummary(len(decisions), actionable, len(decisions)-actionable, elapsed)
	console.PrintScan(decisions, elapsed)

	writeReports(cfg, decisions, fileLog)
}

func writeReports(cfg *config.ScannerConfig, decisions []engine.Decision, fileLog *logger.Logger) {
	if cfg.Reporting.CSV {
		path := filepath.Join(cfg.Reporting.OutputDir, "decisions.csv")
		if err := reporting.NewCSVReporter().WriteDecisions(decisions, path); err != nil {
			fileLog.LogError("csv report", err)
		}
	}
	if cfg.Reporting.Excel {
		name := fmt.Sprintf("scan_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
		path := filepath.Join(cfg.Reporting.OutputDir, name)
		if err := reporting.NewExcelReporter().WriteScanXLSX(decisions, path); err != nil {
			fileLog.LogError("excel report", err)
		}
	}
}

func startMonitoringServer(addr string, health *monitoring.HealthChecker) {
	mux := http.NewServeMux()
	mux.Handle("/health", health)
	mux.Handle("/metrics", monitoring.NewMetricsHandler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("Monitoring server error: %v", err)
		}
	}()
}

// staticAccount serves the configured risk budget on every scan
type staticAccount struct {
	budget risk.Budget
}

func (a *staticAccount) Budget(ctx context.Context) (risk.Budget, error) {
	return a.budget, nil
}

// loadEnvFile loads environment variables from a file
func loadEnvFile(envFile string) error {
	if _, err := os.Stat(envFile); err == nil {
		return godotenv.Load(envFile)
	}
	return fmt.Errorf("env file %s not found", envFile)
}
