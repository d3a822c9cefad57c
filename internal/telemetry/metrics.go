// Package telemetry aggregates query metrics in memory and optionally
// persists them to a local SQLite database for later inspection.
package telemetry

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// zeroRingSize bounds the retained zero-result query ring.
const zeroRingSize = 100

// latencyBounds are the upper bounds of the latency histogram buckets;
// the last bucket is unbounded.
var latencyBounds = []time.Duration{
	10 * time.Millisecond,
	50 * time.Millisecond,
	250 * time.Millisecond,
	time.Second,
}

// Event is one recorded retrieval.
type Event struct {
	Query   string
	Domain  string
	Mode    string
	Results int
	Latency time.Duration
	At      time.Time
}

// TermCount is a query term with its observed frequency.
type TermCount struct {
	Term  string
	Count int64
}

// Snapshot is a point-in-time view of the collected metrics.
type Snapshot struct {
	TotalQueries   int64
	ZeroResults    int64
	ModeCounts     map[string]int64
	DomainCounts   map[string]int64
	TopTerms       []TermCount
	LatencyBuckets []int64
	// RecentZeroResultQueries holds up to the last 100 queries that
	// returned nothing, oldest first.
	RecentZeroResultQueries []string
}

// Collector aggregates events in memory. Safe for concurrent use.
type Collector struct {
	mu           sync.Mutex
	total        int64
	zeroResults  int64
	modeCounts   map[string]int64
	domainCounts map[string]int64
	termFreq     map[string]int64
	latency      []int64

	zeroRing []string
	zeroNext int
	zeroFull bool
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		modeCounts:   make(map[string]int64),
		domainCounts: make(map[string]int64),
		termFreq:     make(map[string]int64),
		latency:      make([]int64, len(latencyBounds)+1),
		zeroRing:     make([]string, zeroRingSize),
	}
}

// Record folds one event into the aggregates.
func (c *Collector) Record(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.modeCounts[ev.Mode]++
	c.domainCounts[ev.Domain]++

	for _, term := range strings.Fields(strings.ToLower(ev.Query)) {
		c.termFreq[term]++
	}

	bucket := len(latencyBounds)
	for i, bound := range latencyBounds {
		if ev.Latency < bound {
			bucket = i
			break
		}
	}
	c.latency[bucket]++

	if ev.Results == 0 {
		c.zeroResults++
		c.zeroRing[c.zeroNext] = ev.Query
		c.zeroNext = (c.zeroNext + 1) % zeroRingSize
		if c.zeroNext == 0 {
			c.zeroFull = true
		}
	}
}

// Snapshot returns a copy of the current aggregates with the n most
// frequent query terms.
func (c *Collector) Snapshot(n int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		TotalQueries:   c.total,
		ZeroResults:    c.zeroResults,
		ModeCounts:     make(map[string]int64, len(c.modeCounts)),
		DomainCounts:   make(map[string]int64, len(c.domainCounts)),
		LatencyBuckets: make([]int64, len(c.latency)),
	}
	for k, v := range c.modeCounts {
		snap.ModeCounts[k] = v
	}
	for k, v := range c.domainCounts {
		snap.DomainCounts[k] = v
	}
	copy(snap.LatencyBuckets, c.latency)

	terms := make([]TermCount, 0, len(c.termFreq))
	for t, count := range c.termFreq {
		terms = append(terms, TermCount{Term: t, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	snap.TopTerms = terms

	if c.zeroFull {
		snap.RecentZeroResultQueries = append(snap.RecentZeroResultQueries, c.zeroRing[c.zeroNext:]...)
	}
	snap.RecentZeroResultQueries = append(snap.RecentZeroResultQueries, c.zeroRing[:c.zeroNext]...)

	return snap
}
