// Package journal is the application context: it owns the trade store, the
// fallback store and the syncer, and exposes the command API the
// presentation layer talks to. One Journal is constructed at startup and
// passed explicitly; there are no ambient singletons.
package journal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/report"
	"trading-journal-go/internal/store"
	"trading-journal-go/internal/syncer"
)

// Journal coordinates the trade data core for a single session.
type Journal struct {
	logger *zap.Logger
	store  *store.TradeStore
	sync   *syncer.Syncer
	now    func() time.Time
}

// New creates the application context.
func New(logger *zap.Logger, tradeStore *store.TradeStore, sync *syncer.Syncer) *Journal {
	return &Journal{
		logger: logger.Named("journal"),
		store:  tradeStore,
		sync:   sync,
		now:    time.Now,
	}
}

// Today returns the current grouping date.
func (j *Journal) Today() string {
	return j.now().Format(models.DateLayout)
}

// Refresh reloads the trade set, remote first, fallback store otherwise.
func (j *Journal) Refresh(ctx context.Context) syncer.Source {
	return j.sync.Refresh(ctx)
}

// CreateTrade validates the input and persists a new trade.
func (j *Journal) CreateTrade(ctx context.Context, input models.TradeInput) (models.Trade, syncer.Source, error) {
	if err := input.Validate(); err != nil {
		return models.Trade{}, syncer.SourceLocal, err
	}
	return j.sync.Create(ctx, input)
}

// DeleteTrade removes a trade by id.
func (j *Journal) DeleteTrade(ctx context.Context, id string) (syncer.Source, error) {
	return j.sync.Delete(ctx, id)
}

// Trades returns the session trade set in insertion order.
func (j *Journal) Trades() []models.Trade {
	return j.store.All()
}

// Summary returns the dashboard headline numbers.
func (j *Journal) Summary() report.Summary {
	return report.Summarize(j.store.All(), j.Today())
}

// Equity returns the cumulative P/L curve.
func (j *Journal) Equity() []report.EquityPoint {
	return report.EquitySeries(j.store.All(), j.Today())
}

// WinLoss returns the win/loss split.
func (j *Journal) WinLoss() report.WinLossCounts {
	return report.CountWinLoss(j.store.All())
}

// Strategies returns the per-strategy performance breakdown.
func (j *Journal) Strategies() []report.StrategyPerformance {
	return report.ByStrategy(j.store.All())
}

// DailyReport returns today's report.
func (j *Journal) DailyReport() report.Report {
	return report.Daily(j.store.All(), j.Today())
}
