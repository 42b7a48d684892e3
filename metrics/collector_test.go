package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/tctx"
)

func TestCollectorArena(t *testing.T) {
	a := arena.NewSafeArena(arena.WithMax(1<<20), arena.WithCommitSize(4096))
	defer a.Free()
	a.Alloc(100)

	c := NewCollector()
	c.AddArena("global", a.Metrics)

	expected := `
# HELP fexp_arena_bytes_committed Bytes of the reservation backed by memory.
# TYPE fexp_arena_bytes_committed gauge
fexp_arena_bytes_committed{arena="global"} 4096
# HELP fexp_arena_bytes_in_use Bytes below the arena cursor.
# TYPE fexp_arena_bytes_in_use gauge
fexp_arena_bytes_in_use{arena="global"} 100
# HELP fexp_arena_bytes_reserved Size of the arena's address reservation.
# TYPE fexp_arena_bytes_reserved gauge
fexp_arena_bytes_reserved{arena="global"} 1.048576e+06
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"fexp_arena_bytes_in_use", "fexp_arena_bytes_committed", "fexp_arena_bytes_reserved"))
}

func TestCollectorThread(t *testing.T) {
	tc := tctx.New(tctx.WithArenaOptions(arena.WithMax(1 << 20)))
	defer tc.Free()
	s1 := tc.Get()
	s2 := tc.Get()
	tc.Return(&s2)
	s1.Arena.Alloc(10)

	c := NewCollector()
	c.AddThread("main", tc.Stats)

	expected := `
# HELP fexp_scratch_slots_created Scratch arenas created by a thread context.
# TYPE fexp_scratch_slots_created gauge
fexp_scratch_slots_created{thread="main"} 2
# HELP fexp_scratch_slots_leased Scratch arenas currently leased.
# TYPE fexp_scratch_slots_leased gauge
fexp_scratch_slots_leased{thread="main"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"fexp_scratch_slots_created", "fexp_scratch_slots_leased"))

	in := gaugeValues(t, c, "fexp_arena_bytes_in_use")
	assert.Equal(t, 0.0, in["main"])
	assert.Equal(t, 10.0, in["main/scratch"])
	reserved := gaugeValues(t, c, "fexp_arena_bytes_reserved")
	assert.Equal(t, float64(2*tctx.DefaultScratchSize), reserved["main/scratch"])
}

func TestCollectorRegisterAndRemove(t *testing.T) {
	a := arena.NewSafeArena(arena.WithMax(1 << 16))
	defer a.Free()

	c := NewCollector()
	c.AddArena("x", a.Metrics)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	assert.Equal(t, 3, testutil.CollectAndCount(c))

	c.Remove("x")
	assert.Equal(t, 0, testutil.CollectAndCount(c))
}

func gaugeValues(t *testing.T, c prometheus.Collector, name string) map[string]float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			out[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
		}
	}
	return out
}
