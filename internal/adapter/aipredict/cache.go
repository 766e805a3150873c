package aipredict

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
)

// CachedPredictor wraps a RiskPredictor with an in-memory LRU cache keyed by
// the full prediction input. Entries expire after the TTL or when the UTC day
// changes, so a cached prediction is never reported for an earlier day.
type CachedPredictor struct {
	inner   domain.RiskPredictor
	cache   *lruCache[cachedPrediction]
	ttl     time.Duration
	metrics *observability.Metrics
}

type cachedPrediction struct {
	prediction domain.Prediction
	storedAt   time.Time
}

// NewCachedPredictor creates a cache decorator around a predictor.
func NewCachedPredictor(inner domain.RiskPredictor, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedPredictor {
	return &CachedPredictor{
		inner:   inner,
		cache:   newLRUCache[cachedPrediction](maxEntries),
		ttl:     ttl,
		metrics: metrics,
	}
}

func (c *CachedPredictor) Predict(ctx context.Context, in domain.PredictionInput) (domain.Prediction, error) {
	if err := in.Validate(); err != nil {
		return domain.Prediction{}, err
	}

	key := cacheKey(in)
	if e, ok := c.cache.get(key); ok && c.fresh(e) {
		c.metrics.PredictorCache.WithLabelValues("hit").Inc()
		return clonePrediction(e.prediction), nil
	}
	c.metrics.PredictorCache.WithLabelValues("miss").Inc()

	p, err := c.inner.Predict(ctx, in)
	if err != nil {
		return p, err
	}
	c.cache.put(key, cachedPrediction{prediction: clonePrediction(p), storedAt: domain.Now()})
	return p, nil
}

func (c *CachedPredictor) fresh(e cachedPrediction) bool {
	now := domain.Now()
	if now.Sub(e.storedAt) >= c.ttl {
		return false
	}
	return now.Truncate(24*time.Hour).Equal(e.storedAt.Truncate(24 * time.Hour))
}

// clonePrediction copies the slice and pointer fields so callers cannot
// modify cached values.
func clonePrediction(p domain.Prediction) domain.Prediction {
	p.KeyFactors = slices.Clone(p.KeyFactors)
	p.Recommendations = slices.Clone(p.Recommendations)
	if p.FireWeatherIndex != nil {
		fwi := *p.FireWeatherIndex
		p.FireWeatherIndex = &fwi
	}
	return p
}

func cacheKey(in domain.PredictionInput) string {
	r := in.Reading
	return fmt.Sprintf("%s|%.4f,%.4f|%.2f|%.2f|%.2f|%d|%.2f|%s|%s",
		in.Location, in.Latitude, in.Longitude,
		r.Temperature, r.Humidity, r.WindSpeed, r.DaysSincePrecipitation,
		in.PrecipitationMM, in.VegetationType, in.Season)
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
