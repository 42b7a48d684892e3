// Package metrics exports arena and thread-context statistics to Prometheus.
package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/tctx"
)

const namespace = "fexp"

var (
	bytesInUseDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "arena", "bytes_in_use"),
		"Bytes below the arena cursor.",
		[]string{"arena"}, nil,
	)
	bytesCommittedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "arena", "bytes_committed"),
		"Bytes of the reservation backed by memory.",
		[]string{"arena"}, nil,
	)
	bytesReservedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "arena", "bytes_reserved"),
		"Size of the arena's address reservation.",
		[]string{"arena"}, nil,
	)
	slotsCreatedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "scratch", "slots_created"),
		"Scratch arenas created by a thread context.",
		[]string{"thread"}, nil,
	)
	slotsLeasedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "scratch", "slots_leased"),
		"Scratch arenas currently leased.",
		[]string{"thread"}, nil,
	)
)

// ArenaSource returns a snapshot of one arena. It is called from Collect, so
// it must be safe to call from the scraping goroutine; SafeArena.Metrics is.
type ArenaSource func() arena.ArenaMetrics

// ThreadSource returns a snapshot of one thread context.
type ThreadSource func() tctx.Stats

// Collector implements prometheus.Collector over named sources.
type Collector struct {
	mu      sync.Mutex
	arenas  map[string]ArenaSource
	threads map[string]ThreadSource
}

// NewCollector returns a collector with no sources.
func NewCollector() *Collector {
	return &Collector{
		arenas:  make(map[string]ArenaSource),
		threads: make(map[string]ThreadSource),
	}
}

// AddArena registers (or replaces) an arena source.
func (c *Collector) AddArena(name string, src ArenaSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.arenas[name] = src
}

// AddThread registers (or replaces) a thread-context source. Its general
// arena is reported as "<name>" and each scratch slot as "<name>/scratch".
func (c *Collector) AddThread(name string, src ThreadSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threads[name] = src
}

// Remove drops the arena or thread source called name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.arenas, name)
	delete(c.threads, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- bytesInUseDesc
	ch <- bytesCommittedDesc
	ch <- bytesReservedDesc
	ch <- slotsCreatedDesc
	ch <- slotsLeasedDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range sortedKeys(c.arenas) {
		collectArena(ch, name, c.arenas[name]())
	}
	for _, name := range sortedKeys(c.threads) {
		st := c.threads[name]()
		ch <- prometheus.MustNewConstMetric(slotsCreatedDesc, prometheus.GaugeValue, float64(st.Created), name)
		ch <- prometheus.MustNewConstMetric(slotsLeasedDesc, prometheus.GaugeValue, float64(st.Leased), name)
		if _, dup := c.arenas[name]; !dup {
			collectArena(ch, name, st.Arena)
		}
		if len(st.Scratch) > 0 {
			var sum arena.ArenaMetrics
			for _, m := range st.Scratch {
				sum.SizeInUse += m.SizeInUse
				sum.Capacity += m.Capacity
				sum.Reserved += m.Reserved
			}
			collectArena(ch, name+"/scratch", sum)
		}
	}
}

func collectArena(ch chan<- prometheus.Metric, name string, m arena.ArenaMetrics) {
	ch <- prometheus.MustNewConstMetric(bytesInUseDesc, prometheus.GaugeValue, float64(m.SizeInUse), name)
	ch <- prometheus.MustNewConstMetric(bytesCommittedDesc, prometheus.GaugeValue, float64(m.Capacity), name)
	ch <- prometheus.MustNewConstMetric(bytesReservedDesc, prometheus.GaugeValue, float64(m.Reserved), name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
