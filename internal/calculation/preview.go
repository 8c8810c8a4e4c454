package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rgehrsitz/fdgo/internal/cache"
	"github.com/rgehrsitz/fdgo/internal/domain"
)

// Previewer memoizes Engine.Preview. Results are keyed on every input that
// influences them, so a hit is always safe to reuse.
type Previewer struct {
	engine *Engine
	cache  cache.Cache

	hits   atomic.Int64
	misses atomic.Int64
}

// NewPreviewer wraps engine with a result cache. A nil cache gets a fresh
// in-memory one.
func NewPreviewer(engine *Engine, c cache.Cache) *Previewer {
	if engine == nil {
		engine = NewEngine()
	}
	if c == nil {
		c = cache.NewMemoryCache(cache.DefaultMemoryCapacity)
	}
	return &Previewer{engine: engine, cache: c}
}

// Preview returns the cached preview for input when one exists and computes
// and stores it otherwise. Cache failures only cost a recomputation.
func (p *Previewer) Preview(ctx context.Context, input *domain.DepositInput, settings *domain.Settings) (domain.Preview, error) {
	if input == nil || settings == nil {
		return domain.Preview{}, fmt.Errorf("preview: input and settings are required")
	}
	key := PreviewKey(input, settings)

	if raw, ok := p.cache.Get(ctx, key); ok {
		var cached domain.Preview
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			p.hits.Add(1)
			return cached, nil
		}
		p.engine.logger().Warnf("discarding unreadable cache entry %s", key)
	}
	p.misses.Add(1)

	preview, err := p.engine.Preview(input, settings)
	if err != nil {
		return domain.Preview{}, err
	}

	raw, err := json.Marshal(preview)
	if err != nil {
		return preview, nil
	}
	if err := p.cache.Set(ctx, key, string(raw)); err != nil {
		p.engine.logger().Warnf("preview cache write failed (non critical): %v", err)
	}
	return preview, nil
}

// Stats returns the number of cache hits and misses so far
func (p *Previewer) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// PreviewKey builds the memo key for a preview. The rate table only takes part
// when the rate is system-managed, since a typed rate never consults it.
func PreviewKey(input *domain.DepositInput, settings *domain.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "preview|%s|%s|%d|%s|", settings.InterestType, input.DepositAmount.String(), input.TenureMonths, input.StartDate)

	if input.InterestRate != nil {
		b.WriteString("rate=")
		b.WriteString(input.InterestRate.String())
		return b.String()
	}

	b.WriteString("managed")
	for _, e := range settings.DefaultInterestRates {
		fmt.Fprintf(&b, "|%d=%s", e.TenureMonths, e.RatePercent.String())
	}
	return b.String()
}
