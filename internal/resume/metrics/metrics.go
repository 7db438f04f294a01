// Package metrics collects service-level counters for the resume service.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds atomically updated service counters.
type Metrics struct {
	queriesTotal     uint64
	queriesCacheHits uint64
	queriesErrors    uint64
	syncRuns         uint64
	syncErrors       uint64
	tierCounts       sync.Map // tier name -> *uint64

	startTime time.Time
}

var (
	global *Metrics
	once   sync.Once
)

// Get returns the global metrics instance.
func Get() *Metrics {
	once.Do(func() {
		global = &Metrics{startTime: time.Now()}
	})
	return global
}

// RecordQuery records one query call.
func (m *Metrics) RecordQuery(cacheHit bool, err error) {
	atomic.AddUint64(&m.queriesTotal, 1)
	if err != nil {
		atomic.AddUint64(&m.queriesErrors, 1)
		return
	}
	if cacheHit {
		atomic.AddUint64(&m.queriesCacheHits, 1)
	}
}

// RecordTier records which strategy answered a query.
func (m *Metrics) RecordTier(tier string) {
	counter, _ := m.tierCounts.LoadOrStore(tier, new(uint64))
	atomic.AddUint64(counter.(*uint64), 1)
}

// RecordSync records one sync run.
func (m *Metrics) RecordSync(err error) {
	atomic.AddUint64(&m.syncRuns, 1)
	if err != nil {
		atomic.AddUint64(&m.syncErrors, 1)
	}
}

// QueriesTotal returns the number of queries served.
func (m *Metrics) QueriesTotal() uint64 {
	return atomic.LoadUint64(&m.queriesTotal)
}

// CacheHits returns the number of cache hits.
func (m *Metrics) CacheHits() uint64 {
	return atomic.LoadUint64(&m.queriesCacheHits)
}

// SyncRuns returns the number of sync runs.
func (m *Metrics) SyncRuns() uint64 {
	return atomic.LoadUint64(&m.syncRuns)
}

// TierCounts returns a snapshot of per-tier answer counts.
func (m *Metrics) TierCounts() map[string]uint64 {
	counts := make(map[string]uint64)
	m.tierCounts.Range(func(key, value any) bool {
		counts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})
	return counts
}

// Uptime returns how long the process has been collecting metrics.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
