// Package syncer reconciles the in-memory trade store with the remote
// trade endpoint, falling back to the local durable store when no remote
// strategy succeeds.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trading-journal-go/internal/id"
	"trading-journal-go/internal/models"
	"trading-journal-go/internal/persistence"
	"trading-journal-go/internal/plcalc"
	"trading-journal-go/internal/sheets"
	"trading-journal-go/internal/store"
)

// Source tells the caller which terminal path served an operation, so the
// UI can message "saved" vs "saved locally/offline".
type Source int

const (
	SourceRemote Source = iota
	SourceLocal
)

func (s Source) String() string {
	if s == SourceRemote {
		return "remote"
	}
	return "local"
}

// Syncer walks an ordered list of access strategies per operation. Exactly
// one path is the terminal success: once a strategy succeeds no further
// strategies are attempted. Per-strategy errors are logged and swallowed.
type Syncer struct {
	logger       *zap.Logger
	strategies   []sheets.Strategy
	store        *store.TradeStore
	local        *persistence.Store
	feeRate      decimal.Decimal
	refreshDelay time.Duration

	// seq tags each read so a stale response arriving late can never
	// overwrite a store state committed by a newer operation.
	seq atomic.Uint64
	mu  sync.Mutex
}

// New creates a Syncer over the given strategy list.
func New(logger *zap.Logger, strategies []sheets.Strategy, tradeStore *store.TradeStore,
	local *persistence.Store, feeRate decimal.Decimal, refreshDelay time.Duration) *Syncer {
	return &Syncer{
		logger:       logger.Named("syncer"),
		strategies:   strategies,
		store:        tradeStore,
		local:        local,
		feeRate:      feeRate,
		refreshDelay: refreshDelay,
	}
}

// Refresh replaces the trade store with the remote trade set, or with the
// local fallback contents when every strategy fails. Read operations never
// surface an error: the fallback always succeeds.
func (s *Syncer) Refresh(ctx context.Context) Source {
	seq := s.seq.Add(1)

	for _, strat := range s.strategies {
		trades, err := strat.FetchAll(ctx)
		if err != nil {
			s.logger.Warn("Read failed, advancing to next strategy",
				zap.String("strategy", strat.Name()), zap.Error(err))
			continue
		}

		if !s.apply(seq, trades) {
			s.logger.Debug("Discarding stale read result", zap.Uint64("seq", seq))
			return SourceRemote
		}
		s.logger.Info("Loaded trades from remote",
			zap.String("strategy", strat.Name()), zap.Int("count", len(trades)))

		// Write-through so the fallback store mirrors the last known
		// remote state.
		if err := s.local.Save(trades); err != nil {
			s.logger.Warn("Write-through to fallback store failed", zap.Error(err))
		}
		return SourceRemote
	}

	trades := s.local.Load()
	if s.apply(seq, trades) {
		s.logger.Warn("All remote strategies failed, loaded trades from fallback store",
			zap.Int("count", len(trades)))
	}
	return SourceLocal
}

// apply commits a read result unless a newer read has been issued since.
func (s *Syncer) apply(seq uint64, trades []models.Trade) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq.Load() != seq {
		return false
	}
	s.store.ReplaceAll(trades)
	return true
}

// Create persists a new trade. Derived fields are computed up front; the
// id comes from the remote service, or is synthesized locally when every
// strategy fails. An error is returned only when the local fallback itself
// fails, which is fatal for the operation.
func (s *Syncer) Create(ctx context.Context, input models.TradeInput) (models.Trade, Source, error) {
	netPL := plcalc.NetPL(input.EntryPrice, input.ExitPrice, input.Lot, s.feeRate)
	trade := models.Trade{
		EntryDate:  input.EntryDate,
		ExitDate:   input.ExitDate,
		StockCode:  input.StockCode,
		EntryPrice: input.EntryPrice,
		ExitPrice:  input.ExitPrice,
		Lot:        input.Lot,
		FeeRate:    s.feeRate,
		Strategy:   input.Strategy,
		Notes:      input.Notes,
		NetPL:      netPL,
		IsWin:      plcalc.IsWin(netPL),
	}

	for _, strat := range s.strategies {
		serverID, err := strat.CreateTrade(ctx, input)
		if err != nil {
			s.logger.Warn("Create failed, advancing to next strategy",
				zap.String("strategy", strat.Name()), zap.Error(err))
			continue
		}

		trade.ID = serverID
		s.logger.Info("Trade created on remote",
			zap.String("strategy", strat.Name()), zap.String("id", serverID))

		// Show the trade immediately; the delayed refresh reconciles the
		// store with whatever the remote actually committed.
		if err := s.store.Add(trade); err != nil {
			s.logger.Warn("Created trade already present in store", zap.Error(err))
		} else if err := s.local.Save(s.store.All()); err != nil {
			s.logger.Warn("Write-through to fallback store failed", zap.Error(err))
		}
		s.scheduleRefresh()
		return trade, SourceRemote, nil
	}

	trade.ID = id.New()
	if err := s.store.Add(trade); err != nil {
		return models.Trade{}, SourceLocal, err
	}
	if err := s.local.Save(s.store.All()); err != nil {
		return models.Trade{}, SourceLocal, fmt.Errorf("offline save failed: %w", err)
	}
	s.logger.Info("Trade saved locally, remote unreachable", zap.String("id", trade.ID))
	return trade, SourceLocal, nil
}

// Delete removes a trade remotely, or locally when every strategy fails.
// Deleting an id that is already gone is a no-op.
func (s *Syncer) Delete(ctx context.Context, tradeID string) (Source, error) {
	for _, strat := range s.strategies {
		if err := strat.DeleteTrade(ctx, tradeID); err != nil {
			s.logger.Warn("Delete failed, advancing to next strategy",
				zap.String("strategy", strat.Name()), zap.Error(err))
			continue
		}

		s.logger.Info("Trade deleted on remote",
			zap.String("strategy", strat.Name()), zap.String("id", tradeID))
		if s.store.Remove(tradeID) {
			if err := s.local.Save(s.store.All()); err != nil {
				s.logger.Warn("Write-through to fallback store failed", zap.Error(err))
			}
		}
		s.scheduleRefresh()
		return SourceRemote, nil
	}

	s.store.Remove(tradeID)
	if err := s.local.Save(s.store.All()); err != nil {
		return SourceLocal, fmt.Errorf("offline delete failed: %w", err)
	}
	s.logger.Info("Trade deleted locally, remote unreachable", zap.String("id", tradeID))
	return SourceLocal, nil
}

// scheduleRefresh queues the re-read that follows a successful remote
// mutation. The delay gives the spreadsheet time to reach consistency; it
// is advisory, not a guarantee.
func (s *Syncer) scheduleRefresh() {
	if s.refreshDelay <= 0 {
		return
	}
	time.AfterFunc(s.refreshDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Refresh(ctx)
	})
}
