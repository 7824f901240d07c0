// Package report derives all aggregate views from a trade snapshot. Every
// function is pure and recomputed per call; nothing is cached, so no view
// can be stale after a committed mutation.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"trading-journal-go/internal/models"
)

// Summary holds the dashboard headline numbers.
type Summary struct {
	TotalCount int             `json:"totalCount"`
	WinRate    float64         `json:"winRate"`
	DailyPL    decimal.Decimal `json:"dailyPL"`
	TotalPL    decimal.Decimal `json:"totalPL"`
}

// Summarize computes the headline numbers for the given snapshot. WinRate
// is a percentage and is 0 for an empty snapshot, never NaN. DailyPL sums
// trades dated today; TotalPL sums everything.
func Summarize(trades []models.Trade, today string) Summary {
	s := Summary{
		TotalCount: len(trades),
		DailyPL:    decimal.Zero,
		TotalPL:    decimal.Zero,
	}

	wins := 0
	for i := range trades {
		t := &trades[i]
		if t.IsWin {
			wins++
		}
		if t.Date() == today {
			s.DailyPL = s.DailyPL.Add(t.NetPL)
		}
		s.TotalPL = s.TotalPL.Add(t.NetPL)
	}

	if s.TotalCount > 0 {
		s.WinRate = float64(wins) / float64(s.TotalCount) * 100
	}
	return s
}

// EquityPoint is one step of the cumulative P/L curve.
type EquityPoint struct {
	Date       string          `json:"date"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// EquitySeries returns the cumulative net P/L trade by trade, ascending by
// date. An empty snapshot yields a single zero point at today's date so
// the curve always has something to draw.
func EquitySeries(trades []models.Trade, today string) []EquityPoint {
	if len(trades) == 0 {
		return []EquityPoint{{Date: today, Cumulative: decimal.Zero}}
	}

	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date() < sorted[j].Date()
	})

	points := make([]EquityPoint, 0, len(sorted))
	cumulative := decimal.Zero
	for i := range sorted {
		cumulative = cumulative.Add(sorted[i].NetPL)
		points = append(points, EquityPoint{Date: sorted[i].Date(), Cumulative: cumulative})
	}
	return points
}

// WinLossCounts splits a snapshot into winning and losing trades. A trade
// with zero net P/L counts as a loss.
type WinLossCounts struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// CountWinLoss tallies wins and losses over the snapshot.
func CountWinLoss(trades []models.Trade) WinLossCounts {
	var c WinLossCounts
	for i := range trades {
		if trades[i].IsWin {
			c.Wins++
		} else {
			c.Losses++
		}
	}
	return c
}

// StrategyPerformance is the per-strategy breakdown row.
type StrategyPerformance struct {
	Strategy string  `json:"strategy"`
	Count    int     `json:"count"`
	WinRate  float64 `json:"winRate"`
}

// ByStrategy groups trades by their strategy label, exactly as stored.
// Groups appear in order of first occurrence.
func ByStrategy(trades []models.Trade) []StrategyPerformance {
	type tally struct {
		count int
		wins  int
	}
	order := make([]string, 0)
	tallies := make(map[string]*tally)

	for i := range trades {
		key := trades[i].Strategy
		tl, seen := tallies[key]
		if !seen {
			tl = &tally{}
			tallies[key] = tl
			order = append(order, key)
		}
		tl.count++
		if trades[i].IsWin {
			tl.wins++
		}
	}

	out := make([]StrategyPerformance, 0, len(order))
	for _, key := range order {
		tl := tallies[key]
		out = append(out, StrategyPerformance{
			Strategy: key,
			Count:    tl.count,
			WinRate:  float64(tl.wins) / float64(tl.count) * 100,
		})
	}
	return out
}

// Display classes for signed P/L values.
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
	ClassZero     = "zero"
)

// PLClass returns the display class for a signed P/L value.
func PLClass(v decimal.Decimal) string {
	switch v.Sign() {
	case 1:
		return ClassPositive
	case -1:
		return ClassNegative
	default:
		return ClassZero
	}
}

// Row is one trade of the daily report, annotated for display.
type Row struct {
	models.Trade
	Class string `json:"class"`
	// PLPercent is the net P/L as a percentage of entry notional.
	PLPercent decimal.Decimal `json:"plPercent"`
}

// Report is the daily report: today's trades in original order with the
// day's win rate and P/L.
type Report struct {
	Date    string          `json:"date"`
	WinRate float64         `json:"winRate"`
	DailyPL decimal.Decimal `json:"dailyPL"`
	Rows    []Row           `json:"rows"`
}

// Daily builds the report for the given date.
func Daily(trades []models.Trade, today string) Report {
	r := Report{
		Date:    today,
		DailyPL: decimal.Zero,
		Rows:    []Row{},
	}

	wins := 0
	for i := range trades {
		t := trades[i]
		if t.Date() != today {
			continue
		}
		if t.IsWin {
			wins++
		}
		r.DailyPL = r.DailyPL.Add(t.NetPL)
		r.Rows = append(r.Rows, Row{
			Trade:     t,
			Class:     PLClass(t.NetPL),
			PLPercent: t.PLPercentage(),
		})
	}

	if len(r.Rows) > 0 {
		r.WinRate = float64(wins) / float64(len(r.Rows)) * 100
	}
	return r
}
