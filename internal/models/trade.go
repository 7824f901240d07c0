package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar-date format for all trade dates.
// ISO dates compare lexicographically in chronological order, which the
// equity curve sort and the "today" grouping rely on.
const DateLayout = "2006-01-02"

// SharesPerLot is the fixed lot multiplier: one lot is 100 shares.
const SharesPerLot = 100

// Trade is a completed trade record. NetPL and IsWin are derived from the
// price fields and must never be set independently of plcalc.
type Trade struct {
	ID         string          `gorm:"primaryKey" json:"id"`
	EntryDate  string          `json:"entryDate"`
	ExitDate   string          `json:"exitDate"`
	StockCode  string          `json:"stockCode"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Lot        int             `json:"lot"`
	FeeRate    decimal.Decimal `json:"fee"`
	Strategy   string          `json:"strategy"`
	Notes      string          `json:"notes"`
	NetPL      decimal.Decimal `json:"netPL"`
	IsWin      bool            `json:"isWin"`
}

// Date returns the grouping date of the trade, which is its entry date.
func (t *Trade) Date() string {
	return t.EntryDate
}

// Shares returns the share count represented by the trade's lot size.
func (t *Trade) Shares() int64 {
	return int64(t.Lot) * SharesPerLot
}

// PLPercentage returns the net P/L as a percentage of the entry notional.
// Returns zero for a zero notional rather than dividing by zero.
func (t *Trade) PLPercentage() decimal.Decimal {
	notional := t.EntryPrice.Mul(decimal.NewFromInt(t.Shares()))
	if notional.IsZero() {
		return decimal.Zero
	}
	return t.NetPL.Div(notional).Mul(decimal.NewFromInt(100))
}

// TradeInput carries the raw form fields supplied by the presentation
// collaborator before derived fields are computed.
type TradeInput struct {
	EntryDate  string          `json:"entryDate"`
	ExitDate   string          `json:"exitDate"`
	StockCode  string          `json:"stockCode"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Lot        int             `json:"lot"`
	Strategy   string          `json:"strategy"`
	Notes      string          `json:"notes"`
}

// ErrValidation marks input rejected before any core operation is invoked.
var ErrValidation = errors.New("invalid trade input")

// Validate checks the input the way the entry form does: required fields
// present, dates parseable and ordered, prices positive, lot at least one.
func (in *TradeInput) Validate() error {
	entry, err := time.Parse(DateLayout, in.EntryDate)
	if err != nil {
		return fmt.Errorf("%w: entry date %q is not a valid date", ErrValidation, in.EntryDate)
	}
	exit, err := time.Parse(DateLayout, in.ExitDate)
	if err != nil {
		return fmt.Errorf("%w: exit date %q is not a valid date", ErrValidation, in.ExitDate)
	}
	if exit.Before(entry) {
		return fmt.Errorf("%w: exit date %s is before entry date %s", ErrValidation, in.ExitDate, in.EntryDate)
	}
	if in.StockCode == "" {
		return fmt.Errorf("%w: stock code is required", ErrValidation)
	}
	if !in.EntryPrice.IsPositive() {
		return fmt.Errorf("%w: entry price must be positive", ErrValidation)
	}
	if !in.ExitPrice.IsPositive() {
		return fmt.Errorf("%w: exit price must be positive", ErrValidation)
	}
	if in.Lot < 1 {
		return fmt.Errorf("%w: lot must be at least 1", ErrValidation)
	}
	if in.Strategy == "" {
		return fmt.Errorf("%w: strategy is required", ErrValidation)
	}
	return nil
}
