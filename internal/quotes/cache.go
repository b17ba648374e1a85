package quotes

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedQuoter wraps a Quoter with a short-TTL Redis cache. Cache failures
// fall through to the underlying provider, so a dead Redis only costs the
// cache, never a quote. Search and name resolution are not cached.
type CachedQuoter struct {
	next   Quoter
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedQuoter decorates next with a Redis cache under "quote:<prefix>:".
func NewCachedQuoter(next Quoter, rdb *redis.Client, prefix string, ttl time.Duration, log zerolog.Logger) *CachedQuoter {
	return &CachedQuoter{
		next:   next,
		rdb:    rdb,
		prefix: "quote:" + prefix + ":",
		ttl:    ttl,
		log:    log.With().Str("component", "quote_cache").Logger(),
	}
}

func (c *CachedQuoter) Quote(ctx context.Context, symbol string) (float64, error) {
	key := c.prefix + symbol

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if price, perr := strconv.ParseFloat(val, 64); perr == nil && price > 0 {
			return price, nil
		}
	}

	price, err := c.next.Quote(ctx, symbol)
	if err != nil {
		return 0, err
	}

	if err := c.rdb.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Failed to cache quote")
	}
	return price, nil
}

func (c *CachedQuoter) QuoteByName(ctx context.Context, name string) (float64, error) {
	return c.next.QuoteByName(ctx, name)
}

func (c *CachedQuoter) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return c.next.Search(ctx, query)
}
