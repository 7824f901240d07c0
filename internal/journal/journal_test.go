package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"trading-journal-go/internal/models"
	"trading-journal-go/internal/persistence"
	"trading-journal-go/internal/sheets"
	"trading-journal-go/internal/store"
	"trading-journal-go/internal/syncer"
)

// unreachableStrategy fails every operation, forcing the local fallback.
type unreachableStrategy struct{}

var _ sheets.Strategy = (*unreachableStrategy)(nil)

func (unreachableStrategy) Name() string { return "direct" }
func (unreachableStrategy) FetchAll(context.Context) ([]models.Trade, error) {
	return nil, errors.New("unreachable")
}
func (unreachableStrategy) CreateTrade(context.Context, models.TradeInput) (string, error) {
	return "", errors.New("unreachable")
}
func (unreachableStrategy) DeleteTrade(context.Context, string) error {
	return errors.New("unreachable")
}

func setupJournal(t *testing.T) *Journal {
	local, err := persistence.NewStore("file::memory:", zap.NewNop())
	assert.NoError(t, err)

	tradeStore := store.NewTradeStore()
	sync := syncer.New(zap.NewNop(), []sheets.Strategy{unreachableStrategy{}},
		tradeStore, local, decimal.RequireFromString("0.004026"), 0)

	j := New(zap.NewNop(), tradeStore, sync)
	j.now = func() time.Time {
		return time.Date(2025, 6, 20, 14, 30, 0, 0, time.UTC)
	}
	return j
}

func TestJournal_OfflineSession(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	assert.Equal(t, "2025-06-20", j.Today())

	// Startup with nothing persisted: empty but functional.
	assert.Equal(t, syncer.SourceLocal, j.Refresh(ctx))
	summary := j.Summary()
	assert.Equal(t, 0, summary.TotalCount)
	assert.Equal(t, 0.0, summary.WinRate)

	equity := j.Equity()
	assert.Len(t, equity, 1)
	assert.Equal(t, "2025-06-20", equity[0].Date)

	// Record a winning trade today.
	trade, source, err := j.CreateTrade(ctx, models.TradeInput{
		EntryDate:  "2025-06-20",
		ExitDate:   "2025-06-20",
		StockCode:  "BBCA",
		EntryPrice: decimal.RequireFromString("1000"),
		ExitPrice:  decimal.RequireFromString("1200"),
		Lot:        1,
		Strategy:   "breakout",
	})
	assert.NoError(t, err)
	assert.Equal(t, syncer.SourceLocal, source)
	assert.True(t, trade.IsWin)

	summary = j.Summary()
	assert.Equal(t, 1, summary.TotalCount)
	assert.Equal(t, 100.0, summary.WinRate)
	assert.True(t, summary.DailyPL.Equal(summary.TotalPL))

	daily := j.DailyReport()
	assert.Len(t, daily.Rows, 1)
	assert.Equal(t, "positive", daily.Rows[0].Class)

	perf := j.Strategies()
	assert.Len(t, perf, 1)
	assert.Equal(t, "breakout", perf[0].Strategy)

	// Delete it again; views must follow immediately.
	source, err = j.DeleteTrade(ctx, trade.ID)
	assert.NoError(t, err)
	assert.Equal(t, syncer.SourceLocal, source)
	assert.Equal(t, 0, j.Summary().TotalCount)
	assert.Empty(t, j.Trades())
}

func TestJournal_CreateTradeRejectsInvalidInput(t *testing.T) {
	j := setupJournal(t)

	_, _, err := j.CreateTrade(context.Background(), models.TradeInput{
		EntryDate: "2025-06-20",
		ExitDate:  "2025-06-19",
		StockCode: "BBCA",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, j.Trades(), "rejected input must not touch the store")
}

func TestJournal_SurvivesRestart(t *testing.T) {
	local, err := persistence.NewStore("file::memory:", zap.NewNop())
	assert.NoError(t, err)

	newSession := func() *Journal {
		tradeStore := store.NewTradeStore()
		sync := syncer.New(zap.NewNop(), []sheets.Strategy{unreachableStrategy{}},
			tradeStore, local, decimal.RequireFromString("0.004026"), 0)
		return New(zap.NewNop(), tradeStore, sync)
	}

	first := newSession()
	_, _, err = first.CreateTrade(context.Background(), models.TradeInput{
		EntryDate:  "2025-06-20",
		ExitDate:   "2025-06-20",
		StockCode:  "TLKM",
		EntryPrice: decimal.RequireFromString("3000"),
		ExitPrice:  decimal.RequireFromString("3100"),
		Lot:        2,
		Strategy:   "swing",
	})
	assert.NoError(t, err)

	// A new session over the same fallback store sees the trade after the
	// offline refresh.
	second := newSession()
	assert.Equal(t, syncer.SourceLocal, second.Refresh(context.Background()))
	assert.Len(t, second.Trades(), 1)
	assert.Equal(t, "TLKM", second.Trades()[0].StockCode)
}
