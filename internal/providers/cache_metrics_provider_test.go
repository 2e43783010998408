package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bbcd/internal/structures"
)

type cacheMetricsTestInner struct {
	data map[string][]byte
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"key1": []byte("val1")}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("val1"), val)
	assert.Equal(t, 1, metrics.cacheHits)
	assert.Equal(t, 0, metrics.cacheMisses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.cacheHits)
	assert.Equal(t, 1, metrics.cacheMisses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &mockMetrics{}}

	cache.Set("key2", []byte("val2"))

	val, ok := inner.Get("key2")
	assert.True(t, ok)
	assert.Equal(t, []byte("val2"), val)
}

func TestNewInstrumentedCacheProvider_NoopStaysUnwrapped(t *testing.T) {
	metrics := &mockMetrics{}

	for _, conf := range []*structures.Config{
		{Cache: structures.CacheConfig{Enabled: false, Size: 8}},
		{Cache: structures.CacheConfig{Enabled: true, Size: 0}},
	} {
		c := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, metrics)
		assert.IsType(t, &noopCache{}, c)

		c.Get("any")
		assert.Equal(t, 0, metrics.cacheMisses, "noop cache must not count misses")
	}
}

func TestNewInstrumentedCacheProvider_WrapsEnabledCache(t *testing.T) {
	conf := &structures.Config{
		Cache:     structures.CacheConfig{Enabled: true, Size: 1},
		Collector: structures.CollectorConfig{PollInterval: 3 * time.Second},
	}
	c := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, &mockMetrics{})
	assert.IsType(t, &MetricsCacheProvider{}, c)
}

func TestMetricsCacheProvider_MultipleOperations(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"a": []byte("1")}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("a") // hit
	cache.Get("b") // miss
	cache.Get("a") // hit
	cache.Get("c") // miss

	assert.Equal(t, 2, metrics.cacheHits)
	assert.Equal(t, 2, metrics.cacheMisses)
}
