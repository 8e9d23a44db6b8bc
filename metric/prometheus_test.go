package metric_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/seqpack"
	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ seqpack.MetricsCollector = (*metric.PrometheusCollector)(nil)

// series returns the number of series gathered for the named metric family.
func series(t *testing.T, reg *prometheus.Registry, name string) int {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return len(mf.GetMetric())
		}
	}
	return 0
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metric.NewPrometheusCollector(reg)

	c.RecordBuild(alphabet.KindDNA, 100, time.Millisecond, nil)
	c.RecordBuild(alphabet.KindDNA, 5, time.Millisecond, errors.New("bad symbol"))
	c.RecordSearch(seqpack.OpExact, 3, time.Millisecond, nil)
	c.RecordChunks(4)

	assert.Equal(t, 2, series(t, reg, "seqpack_builds_total"))
	assert.Equal(t, 1, series(t, reg, "seqpack_search_chunks"))
}

func TestPrometheusCollectorWithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metric.NewPrometheusCollector(reg)

	eng, err := seqpack.New(seqpack.WithMetricsCollector(c), seqpack.WithChunkSize(8))
	require.NoError(t, err)

	ctx := context.Background()
	seq, err := eng.Build(ctx, alphabet.KindDNA, []byte("ACGTACGTACGTACGTACGT"))
	require.NoError(t, err)

	matches, err := eng.FindExact(ctx, seq, []byte("ACGT"))
	require.NoError(t, err)
	assert.Len(t, matches, 5)

	assert.Equal(t, 1, series(t, reg, "seqpack_searches_total"))
	assert.Equal(t, 1, series(t, reg, "seqpack_build_symbols_total"))
}
