// Package sheets talks to the spreadsheet-backed trade endpoint, directly
// or through a URL-rewriting proxy.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/models"
)

const (
	actionAddTrade    = "ADD_TRADE"
	actionDeleteTrade = "DELETE_TRADE"

	// winMarker is the textual win flag used by the sheet.
	winMarker = "WIN"

	statusSuccess = "success"
)

// apiResponse is the envelope every endpoint response uses.
type apiResponse struct {
	Status  string        `json:"status"`
	Data    []tradeRecord `json:"data"`
	ID      textValue     `json:"id"`
	Message string        `json:"message"`
}

// tradeRecord is a trade row as the sheet returns it. Sheet cells may
// arrive as JSON numbers or as strings, so numeric fields decode through
// decimal and ids through textValue.
type tradeRecord struct {
	ID         textValue       `json:"id"`
	EntryDate  string          `json:"entryDate"`
	ExitDate   string          `json:"exitDate"`
	StockCode  string          `json:"stockCode"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Lot        decimal.Decimal `json:"lot"`
	Fee        decimal.Decimal `json:"fee"`
	Strategy   string          `json:"strategy"`
	Notes      string          `json:"notes"`
	NetPL      decimal.Decimal `json:"netPL"`
	IsWin      string          `json:"isWin"`
}

// toTrade coerces a sheet row into the Trade shape.
func (r *tradeRecord) toTrade() models.Trade {
	return models.Trade{
		ID:         string(r.ID),
		EntryDate:  r.EntryDate,
		ExitDate:   r.ExitDate,
		StockCode:  r.StockCode,
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		Lot:        int(r.Lot.IntPart()),
		FeeRate:    r.Fee,
		Strategy:   r.Strategy,
		Notes:      r.Notes,
		NetPL:      r.NetPL,
		IsWin:      r.IsWin == winMarker,
	}
}

// textValue decodes a JSON string or bare scalar into its textual form.
// Sheet ids come back as numbers, offline-created ids as strings.
type textValue string

func (v *textValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = textValue(s)
		return nil
	}
	*v = textValue(string(data))
	return nil
}

// Client executes requests against the trade endpoint. Each request is
// bounded by the configured timeout and throttled by the rate limiter; a
// transport error, non-2xx status, or non-success payload status is
// reported as an error so the caller can advance to its next strategy.
type Client struct {
	http    *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewClient creates a new endpoint client.
func NewClient(cfg *config.Remote, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(limit, burst)

	return &Client{
		http:    httpClient,
		logger:  logger.Named("sheets"),
		limiter: limiter,
	}
}

// Get performs a read against the given URL and returns the parsed trades.
func (c *Client) Get(ctx context.Context, url string) ([]models.Trade, error) {
	out, err := c.execute(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	trades := make([]models.Trade, 0, len(out.Data))
	for i := range out.Data {
		trades = append(trades, out.Data[i].toTrade())
	}
	return trades, nil
}

// PostAdd submits a new trade and returns the server-assigned id.
func (c *Client) PostAdd(ctx context.Context, url string, input models.TradeInput) (string, error) {
	body := map[string]any{
		"action": actionAddTrade,
		"data":   input,
	}
	out, err := c.execute(ctx, "POST", url, body)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("remote accepted trade but returned no id")
	}
	return string(out.ID), nil
}

// PostDelete asks the remote to delete the trade with the given id.
func (c *Client) PostDelete(ctx context.Context, url string, id string) error {
	body := map[string]any{
		"action": actionDeleteTrade,
		"id":     id,
	}
	_, err := c.execute(ctx, "POST", url, body)
	return err
}

func (c *Client) execute(ctx context.Context, method, url string, body any) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var out apiResponse
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		// Apps Script deployments answer JSON with a text/plain content type.
		ForceContentType("application/json").
		SetResult(&out)
	if body != nil {
		req.SetBody(body)
	}

	c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", url))
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("transport error: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("request failed with status %s", resp.Status())
	}
	if out.Status != statusSuccess {
		return nil, fmt.Errorf("remote status %q: %s", out.Status, out.Message)
	}
	return &out, nil
}
