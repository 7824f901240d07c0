package sheets

import (
	"context"
	"net/url"
	"strings"

	"trading-journal-go/internal/models"
)

// placeholder marks where the escaped endpoint URL goes in a proxy template.
const placeholder = "{url}"

// Strategy is one way of reaching the trade endpoint. Strategies are tried
// in priority order by the syncer; any error means "advance to the next
// one", never "retry this one".
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// FetchAll reads the full trade set.
	FetchAll(ctx context.Context) ([]models.Trade, error)

	// CreateTrade submits a new trade and returns the server-assigned id.
	CreateTrade(ctx context.Context, input models.TradeInput) (string, error)

	// DeleteTrade removes the trade with the given id.
	DeleteTrade(ctx context.Context, id string) error
}

// endpointStrategy reaches the endpoint through a fixed, pre-rewritten URL.
// The direct and proxied strategies differ only in that URL.
type endpointStrategy struct {
	name   string
	client *Client
	url    string
}

var _ Strategy = (*endpointStrategy)(nil)

// NewDirect returns the strategy that calls the endpoint with no intermediary.
func NewDirect(client *Client, endpoint string) Strategy {
	return &endpointStrategy{name: "direct", client: client, url: endpoint}
}

// NewProxy returns a strategy that routes the request through the proxy
// described by the given URL template.
func NewProxy(client *Client, template, endpoint string) Strategy {
	return &endpointStrategy{
		name:   "proxy " + proxyLabel(template),
		client: client,
		url:    RewriteURL(template, endpoint),
	}
}

// RewriteURL substitutes the query-escaped endpoint into a proxy template.
func RewriteURL(template, endpoint string) string {
	return strings.ReplaceAll(template, placeholder, url.QueryEscape(endpoint))
}

// proxyLabel extracts a short human-readable label from a proxy template.
func proxyLabel(template string) string {
	if u, err := url.Parse(strings.ReplaceAll(template, placeholder, "")); err == nil && u.Host != "" {
		return u.Host
	}
	return template
}

func (s *endpointStrategy) Name() string {
	return s.name
}

func (s *endpointStrategy) FetchAll(ctx context.Context) ([]models.Trade, error) {
	return s.client.Get(ctx, s.url)
}

func (s *endpointStrategy) CreateTrade(ctx context.Context, input models.TradeInput) (string, error) {
	return s.client.PostAdd(ctx, s.url, input)
}

func (s *endpointStrategy) DeleteTrade(ctx context.Context, id string) error {
	return s.client.PostDelete(ctx, s.url, id)
}

// BuildStrategies assembles the ordered strategy list for an endpoint:
// proxies in configured order, then the direct call.
func BuildStrategies(client *Client, endpoint string, proxies []string) []Strategy {
	strategies := make([]Strategy, 0, len(proxies)+1)
	for _, template := range proxies {
		strategies = append(strategies, NewProxy(client, template, endpoint))
	}
	return append(strategies, NewDirect(client, endpoint))
}
