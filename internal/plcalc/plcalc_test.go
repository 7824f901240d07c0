package plcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetPL(t *testing.T) {
	t.Run("ReferenceScenario", func(t *testing.T) {
		// entry 1000, exit 1200, 1 lot: gross = 200*100 = 20000,
		// fee = 2200*100*0.004026 = 885.72, net = 19114.28
		net := NetPL(d("1000"), d("1200"), 1, DefaultFeeRate)
		assert.True(t, d("19114.28").Equal(net), "got %s", net)
		assert.True(t, IsWin(net))
	})

	t.Run("LosingTrade", func(t *testing.T) {
		net := NetPL(d("1200"), d("1000"), 1, DefaultFeeRate)
		assert.True(t, d("-20885.72").Equal(net), "got %s", net)
		assert.False(t, IsWin(net))
	})

	t.Run("FlatTradeLosesFees", func(t *testing.T) {
		// No price movement still pays fees on both legs.
		net := NetPL(d("500"), d("500"), 2, DefaultFeeRate)
		assert.True(t, net.IsNegative(), "got %s", net)
	})

	t.Run("ZeroFeeRate", func(t *testing.T) {
		net := NetPL(d("100"), d("110"), 3, decimal.Zero)
		assert.True(t, d("3000").Equal(net), "got %s", net)
	})

	t.Run("MatchesFormula", func(t *testing.T) {
		cases := []struct {
			entry, exit string
			lot         int
			fee         string
		}{
			{"1000", "1200", 1, "0.004026"},
			{"250", "245", 7, "0.004026"},
			{"83.5", "91.25", 12, "0.0015"},
			{"1", "1", 1, "0"},
		}
		for _, tc := range cases {
			entry, exit, fee := d(tc.entry), d(tc.exit), d(tc.fee)
			shares := decimal.NewFromInt(int64(tc.lot) * 100)
			want := exit.Sub(entry).Mul(shares).
				Sub(entry.Add(exit).Mul(shares).Mul(fee))

			got := NetPL(entry, exit, tc.lot, fee)
			assert.True(t, want.Equal(got), "entry=%s exit=%s lot=%d: want %s got %s",
				entry, exit, tc.lot, want, got)
			// Deterministic: same inputs, same output.
			assert.True(t, got.Equal(NetPL(entry, exit, tc.lot, fee)))
		}
	})
}

func TestIsWin(t *testing.T) {
	assert.True(t, IsWin(d("0.01")))
	assert.False(t, IsWin(decimal.Zero), "zero net P/L is not a win")
	assert.False(t, IsWin(d("-0.01")))
}
