package metrics_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anurag02012004/ai-resume-project/internal/resume/metrics"
)

func TestRecordQueryCounters(t *testing.T) {
	m := &metrics.Metrics{}

	m.RecordQuery(false, nil)
	m.RecordQuery(true, nil)
	m.RecordQuery(false, errors.New("boom"))

	assert.Equal(t, uint64(3), m.QueriesTotal())
	assert.Equal(t, uint64(1), m.CacheHits())
}

func TestRecordTierCounts(t *testing.T) {
	m := &metrics.Metrics{}

	m.RecordTier("vector_llm")
	m.RecordTier("vector_llm")
	m.RecordTier("static_default")

	counts := m.TierCounts()
	assert.Equal(t, uint64(2), counts["vector_llm"])
	assert.Equal(t, uint64(1), counts["static_default"])
}

func TestRecordSync(t *testing.T) {
	m := &metrics.Metrics{}

	m.RecordSync(nil)
	m.RecordSync(errors.New("boom"))

	assert.Equal(t, uint64(2), m.SyncRuns())
}

func TestConcurrentRecording(t *testing.T) {
	m := &metrics.Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordQuery(false, nil)
			m.RecordTier("keyword_template")
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), m.QueriesTotal())
	assert.Equal(t, uint64(50), m.TierCounts()["keyword_template"])
}

func TestGetReturnsSameInstance(t *testing.T) {
	assert.Same(t, metrics.Get(), metrics.Get())
}
