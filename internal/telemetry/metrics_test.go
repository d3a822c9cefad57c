package telemetry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector_Aggregates(t *testing.T) {
	c := NewCollector()

	c.Record(Event{Query: "aspirin side effects", Domain: "medical", Mode: "semantic", Results: 3, Latency: 5 * time.Millisecond})
	c.Record(Event{Query: "aspirin dosage", Domain: "medical", Mode: "keyword", Results: 1, Latency: 120 * time.Millisecond})
	c.Record(Event{Query: "obscure topic", Domain: "general", Mode: "semantic", Results: 0, Latency: 2 * time.Second})

	snap := c.Snapshot(5)

	assert.EqualValues(t, 3, snap.TotalQueries)
	assert.EqualValues(t, 1, snap.ZeroResults)
	assert.EqualValues(t, 2, snap.ModeCounts["semantic"])
	assert.EqualValues(t, 1, snap.ModeCounts["keyword"])
	assert.EqualValues(t, 2, snap.DomainCounts["medical"])

	// aspirin appears in two queries; it leads the term list.
	assert.Equal(t, "aspirin", snap.TopTerms[0].Term)
	assert.EqualValues(t, 2, snap.TopTerms[0].Count)
	assert.Len(t, snap.TopTerms, 5)

	// Latency histogram: <10ms, 50-250ms, >=1s.
	assert.EqualValues(t, 1, snap.LatencyBuckets[0])
	assert.EqualValues(t, 1, snap.LatencyBuckets[2])
	assert.EqualValues(t, 1, snap.LatencyBuckets[len(snap.LatencyBuckets)-1])

	assert.Equal(t, []string{"obscure topic"}, snap.RecentZeroResultQueries)
}

func TestCollector_ZeroResultRingWraps(t *testing.T) {
	c := NewCollector()
	for i := 0; i < zeroRingSize+10; i++ {
		c.Record(Event{Query: fmt.Sprintf("q%03d", i), Results: 0})
	}

	snap := c.Snapshot(1)
	assert.Len(t, snap.RecentZeroResultQueries, zeroRingSize)
	// Oldest retained entry is the 11th recorded query.
	assert.Equal(t, "q010", snap.RecentZeroResultQueries[0])
	assert.Equal(t, fmt.Sprintf("q%03d", zeroRingSize+9),
		snap.RecentZeroResultQueries[zeroRingSize-1])
}

func TestCollector_SnapshotIsACopy(t *testing.T) {
	c := NewCollector()
	c.Record(Event{Query: "one", Domain: "medical", Mode: "semantic", Results: 1})

	snap := c.Snapshot(5)
	snap.ModeCounts["semantic"] = 99

	assert.EqualValues(t, 1, c.Snapshot(5).ModeCounts["semantic"])
}
