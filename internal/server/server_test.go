package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/models"
	"trading-journal-go/internal/persistence"
	"trading-journal-go/internal/sheets"
	"trading-journal-go/internal/store"
	"trading-journal-go/internal/syncer"
)

type unreachableStrategy struct{}

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

// setupAPI builds the full stack behind a test HTTP server, with the
// remote endpoint unreachable so every write lands in the fallback store.
func setupAPI(t *testing.T) (*httptest.Server, *journal.Journal) {
	local, err := persistence.NewStore("file::memory:", zap.NewNop())
	assert.NoError(t, err)

	tradeStore := store.NewTradeStore()
	sync := syncer.New(zap.NewNop(), []sheets.Strategy{unreachableStrategy{}},
		tradeStore, local, decimal.RequireFromString("0.004026"), 0)
	j := journal.New(zap.NewNop(), tradeStore, sync)

	srv := New(j, zap.NewNop(), 0)
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return ts, j
}

func TestHealth(t *testing.T) {
	ts, _ := setupAPI(t)

	resp, err := http.Get(ts.URL + "/health")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndListTrades(t *testing.T) {
	ts, _ := setupAPI(t)

	body := `{
		"entryDate": "2025-06-20",
		"exitDate": "2025-06-21",
		"stockCode": "BBCA",
		"entryPrice": "1000",
		"exitPrice": "1200",
		"lot": 1,
		"strategy": "breakout",
		"notes": "gap up"
	}`
	resp, err := http.Post(ts.URL+"/api/trades", "application/json", strings.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Status string `json:"status"`
		ID     string `json:"id"`
		Source string `json:"source"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "success", created.Status)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "local", created.Source, "remote is unreachable in this test")

	listResp, err := http.Get(ts.URL + "/api/trades")
	assert.NoError(t, err)
	defer listResp.Body.Close()

	var list struct {
		Data []models.Trade `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Len(t, list.Data, 1)
	assert.Equal(t, created.ID, list.Data[0].ID)
	assert.True(t, list.Data[0].IsWin)
}

func TestCreateTradeValidation(t *testing.T) {
	ts, _ := setupAPI(t)

	t.Run("ExitBeforeEntry", func(t *testing.T) {
		body := `{
			"entryDate": "2025-06-20",
			"exitDate": "2025-06-19",
			"stockCode": "BBCA",
			"entryPrice": "1000",
			"exitPrice": "1200",
			"lot": 1,
			"strategy": "breakout"
		}`
		resp, err := http.Post(ts.URL+"/api/trades", "application/json", strings.NewReader(body))
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/trades", "application/json", strings.NewReader("{"))
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteTrade(t *testing.T) {
	ts, j := setupAPI(t)

	trade, _, err := j.CreateTrade(context.Background(), models.TradeInput{
		EntryDate:  "2025-06-20",
		ExitDate:   "2025-06-20",
		StockCode:  "TLKM",
		EntryPrice: decimal.RequireFromString("3000"),
		ExitPrice:  decimal.RequireFromString("2900"),
		Lot:        1,
		Strategy:   "swing",
	})
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/trades/"+trade.ID, nil)
	assert.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, j.Trades())
}

func TestSummaryEndpoint(t *testing.T) {
	ts, j := setupAPI(t)

	_, _, err := j.CreateTrade(context.Background(), models.TradeInput{
		EntryDate:  j.Today(),
		ExitDate:   j.Today(),
		StockCode:  "BBCA",
		EntryPrice: decimal.RequireFromString("1000"),
		ExitPrice:  decimal.RequireFromString("1200"),
		Lot:        1,
		Strategy:   "breakout",
	})
	assert.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/summary")
	assert.NoError(t, err)
	defer resp.Body.Close()

	var summary struct {
		TotalCount int     `json:"totalCount"`
		WinRate    float64 `json:"winRate"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 1, summary.TotalCount)
	assert.Equal(t, 100.0, summary.WinRate)
}

func TestRefreshEndpoint(t *testing.T) {
	ts, _ := setupAPI(t)

	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Status string `json:"status"`
		Source string `json:"source"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "local", out.Source)
}
