package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/logger"
	"trading-journal-go/internal/persistence"
	"trading-journal-go/internal/sheets"
	"trading-journal-go/internal/store"
	"trading-journal-go/internal/syncer"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A single-user stock trading journal",
	Long: `Journal records closed stock trades, computes realized P/L net of
fees, and serves dashboard aggregates (equity curve, win rate, per-strategy
performance) and a daily report.

Trades live in a spreadsheet-backed remote endpoint; a local sqlite store
takes over whenever the remote is unreachable.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory containing config.yml")
}

// buildJournal wires the full application context from configuration.
func buildJournal() (*journal.Journal, *zap.Logger, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not build logger: %w", err)
	}
	log.Info("Configuration loaded")

	local, err := persistence.NewStore(cfg.Database.DSN, log)
	if err != nil {
		return nil, nil, nil, err
	}

	client := sheets.NewClient(&cfg.Remote, log)
	strategies := sheets.BuildStrategies(client, cfg.Remote.Endpoint, cfg.Remote.Proxies)

	tradeStore := store.NewTradeStore()
	sync := syncer.New(log, strategies, tradeStore, local,
		decimal.NewFromFloat(cfg.Journal.FeeRate),
		time.Duration(cfg.Journal.RefreshDelayMs)*time.Millisecond)

	return journal.New(log, tradeStore, sync), log, &cfg, nil
}
