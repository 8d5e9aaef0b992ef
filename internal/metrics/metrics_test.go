package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMutation(t *testing.T) {
	initialSuccess := testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "success"))
	initialError := testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "error"))

	ObserveMutation("create", nil)
	ObserveMutation("create", errors.New("boom"))
	ObserveMutation("create", nil)

	assert.Equal(t, initialSuccess+2, testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "success")))
	assert.Equal(t, initialError+1, testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "error")))
}

func TestObserveList(t *testing.T) {
	initial := testutil.ToFloat64(ArticleListsServed.WithLabelValues("public"))

	ObserveList("public", 7)

	assert.Equal(t, initial+1, testutil.ToFloat64(ArticleListsServed.WithLabelValues("public")))
	assert.Equal(t, float64(7), testutil.ToFloat64(ArticleListSize.WithLabelValues("public")))

	ObserveList("public", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(ArticleListSize.WithLabelValues("public")))
}

func TestObserveCache(t *testing.T) {
	initialHit := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("hit"))
	initialMiss := testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("miss"))

	ObserveCache("hit")
	ObserveCache("miss")
	ObserveCache("miss")

	assert.Equal(t, initialHit+1, testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("hit")))
	assert.Equal(t, initialMiss+2, testutil.ToFloat64(CacheRequestsTotal.WithLabelValues("miss")))
}

func TestTimerObserveDuration(t *testing.T) {
	timer := NewTimer()
	time.Sleep(5 * time.Millisecond)

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_timer_histogram",
		Help:    "Test histogram for timer",
		Buckets: []float64{.001, .01, .1, 1},
	})
	timer.ObserveDuration(histogram)

	assert.Equal(t, 1, testutil.CollectAndCount(histogram))
}

func TestDBQueryDurationRecorded(t *testing.T) {
	NewTimer().ObserveDuration(DBQueryDuration.WithLabelValues("list"))

	assert.GreaterOrEqual(t, testutil.CollectAndCount(DBQueryDuration), 1)
}

func TestHTTPMetricsExist(t *testing.T) {
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInFlight)

	initialRequests := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()
	assert.Equal(t, initialRequests+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestPoolStatsCollectorStartStop(t *testing.T) {
	collector := NewPoolStatsCollectorWithProvider(&staticPoolStatsProvider{
		stats: mockPoolStats{total: 10, idle: 4, acquired: 6},
	})

	collector.Start(10 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	collector.Stop()

	assert.Equal(t, float64(10), testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("total")))
	assert.Equal(t, float64(4), testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("idle")))
	assert.Equal(t, float64(6), testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("in_use")))
}

func TestPoolStatsCollectorCollectsImmediately(t *testing.T) {
	provider := &staticPoolStatsProvider{stats: mockPoolStats{total: 3, idle: 3}}
	collector := NewPoolStatsCollectorWithProvider(provider)

	// A long interval means only the initial collection can run.
	collector.Start(time.Hour)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("total")) == 3
	}, time.Second, 5*time.Millisecond)
	collector.Stop()
}

// mockPoolStats implements PoolStats for testing
type mockPoolStats struct {
	total    int32
	idle     int32
	acquired int32
}

func (m mockPoolStats) TotalConns() int32    { return m.total }
func (m mockPoolStats) IdleConns() int32     { return m.idle }
func (m mockPoolStats) AcquiredConns() int32 { return m.acquired }

type staticPoolStatsProvider struct {
	stats mockPoolStats
}

func (p *staticPoolStatsProvider) Stat() PoolStats { return p.stats }
