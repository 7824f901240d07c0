// Package plcalc computes realized net profit/loss for a closed trade.
package plcalc

import (
	"github.com/shopspring/decimal"

	"trading-journal-go/internal/models"
)

// DefaultFeeRate is the fee rate applied to gross notional when the caller
// does not supply one. The rate covers both the entry and exit leg.
var DefaultFeeRate = decimal.RequireFromString("0.004026")

// NetPL returns the signed net profit/loss after fees.
//
//	shares   = lot * 100
//	grossPL  = (exit - entry) * shares
//	totalFee = (entry + exit) * shares * feeRate
//	netPL    = grossPL - totalFee
//
// The function is pure and total over any finite inputs; validation is the
// caller's concern.
func NetPL(entryPrice, exitPrice decimal.Decimal, lot int, feeRate decimal.Decimal) decimal.Decimal {
	shares := decimal.NewFromInt(int64(lot) * models.SharesPerLot)
	grossPL := exitPrice.Sub(entryPrice).Mul(shares)
	totalFee := entryPrice.Add(exitPrice).Mul(shares).Mul(feeRate)
	return grossPL.Sub(totalFee)
}

// IsWin reports whether a net P/L counts as a winning trade. Zero is not
// a win.
func IsWin(netPL decimal.Decimal) bool {
	return netPL.IsPositive()
}
