package seqpack_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/seqpack"
	"github.com/hupe1980/seqpack/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := seqpack.ParseConfig([]byte(`
chunk_size: 4096
overlap: 32
workers: 4
ambiguity_matching: true
memory_limit_bytes: 1048576
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.ChunkSize)
	assert.Equal(t, 32, cfg.Overlap)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.AmbiguityMatching)
	assert.Equal(t, int64(1<<20), cfg.MemoryLimitBytes)

	// Keys missing from the document keep their defaults.
	assert.True(t, cfg.Parallel)
	assert.Equal(t, seqpack.DefaultConfig().WordParallel, cfg.WordParallel)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"negative chunk": "chunk_size: -1",
		"negative limit": "io_limit_bytes_per_sec: -5",
		"bad level":      "log_level: loud",
		"bad yaml":       "workers: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := seqpack.ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\nparallel: false\nchunk_size: 8\n"), 0o600))

	cfg, err := seqpack.LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Parallel)

	eng, err := seqpack.New(seqpack.WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, 2, eng.Workers())

	seq, err := seqpack.BuildString(alphabet.KindDNA, "ACGTACGTACGTACGT")
	require.NoError(t, err)
	ms, err := eng.FindExact(context.Background(), seq, []byte("TACG"))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 11}, ms.Starts())

	_, err = seqpack.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
