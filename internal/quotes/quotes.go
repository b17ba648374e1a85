package quotes

import (
	"context"
	"errors"
)

// ErrUnavailable is returned for every failure class a provider can hit:
// network error, timeout, non-2xx response, unparseable body, or a response
// with no usable price. Callers never see provider-specific errors.
var ErrUnavailable = errors.New("quote unavailable")

// SearchResult is one match from a provider symbol search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
	Type     string `json:"type"`
}

// Quoter is the price oracle contract. Quote takes a provider symbol/id;
// QuoteByName resolves a free-text name via search first.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (float64, error)
	QuoteByName(ctx context.Context, name string) (float64, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
