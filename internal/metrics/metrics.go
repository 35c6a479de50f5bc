package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a counter or histogram bucket.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful password logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected or failed password logins.
	MetricLoginFailure
	// MetricOAuthLoginSuccess counts successful OAuth logins.
	MetricOAuthLoginSuccess
	// MetricOAuthLoginFailure counts rejected or failed OAuth logins.
	MetricOAuthLoginFailure
	// MetricLogout counts logout operations, including idempotent repeats.
	MetricLogout
	// MetricCredentialExpired counts 401-triggered session teardowns.
	MetricCredentialExpired
	// MetricIdentityRefreshSuccess counts successful identity fetches.
	MetricIdentityRefreshSuccess
	// MetricIdentityRefreshFailure counts failed identity fetches.
	MetricIdentityRefreshFailure
	// MetricIdentityUpdated counts merge-updates applied to the identity.
	MetricIdentityUpdated
	// MetricSessionHydrated counts sessions restored from the credential store.
	MetricSessionHydrated
	// MetricStorageInconsistency counts half-written credential entries
	// discarded at initialization.
	MetricStorageInconsistency
	// MetricUnknownCommand counts dispatch actions no store recognized.
	MetricUnknownCommand
	// MetricLoginLatency is the login exchange latency histogram.
	MetricLoginLatency
	metricIDCount
)

// IDCount returns the number of defined metric IDs.
func IDCount() int { return int(metricIDCount) }

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

var bucketBounds = [histBucketCount - 1]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

func bucketIndex(d time.Duration) int {
	for i, bound := range bucketBounds {
		if d <= bound {
			return i
		}
	}
	return histBucketCount - 1
}

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

// Counters are padded to a cache line to keep concurrent increments from
// false-sharing.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Config controls which parts of the metrics system are live.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// Metrics holds atomic counters and an optional latency histogram. A nil
// or disabled Metrics is a no-op for every operation.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// Snapshot is a point-in-time deep copy of all metrics.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// New creates a Metrics instance. When cfg.Enabled is false every
// operation is a no-op.
func New(cfg Config) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatency,
	}
}

// Enabled reports whether the metrics system is live.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is live.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample for the login histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricLoginLatency {
		return
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucketIndex(d)], 1)
}

// Value returns the current counter value for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a deep copy of all counters and histogram buckets.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil || !m.enabled {
		return Snapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := Snapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := range buckets {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricLoginLatency].buckets[i])
		}
		s.Histograms[MetricLoginLatency] = buckets
	}
	return s
}
