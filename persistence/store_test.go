package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/blobstore"
	"github.com/hupe1980/seqpack/codec"
	"github.com/hupe1980/seqpack/resource"
	"github.com/hupe1980/seqpack/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	backends := map[string]blobstore.Store{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}
	for name, blobs := range backends {
		t.Run(name, func(t *testing.T) {
			s := NewStore(blobs, WithCompression(CompressionLZ4))

			p, err := sequence.FromString(alphabet.DNA, strings.Repeat("ACGTAC", 500))
			require.NoError(t, err)
			p = p.WithID("chr1").WithDescription("test contig")

			n, err := s.Save(ctx, "chr1", p)
			require.NoError(t, err)
			assert.Positive(t, n)

			got, err := s.Load(ctx, "chr1")
			require.NoError(t, err)
			assert.True(t, p.Equal(got))
			assert.Equal(t, p.Metadata(), got.Metadata())

			e, err := s.Stat(ctx, "chr1")
			require.NoError(t, err)
			assert.Equal(t, "dna", e.Kind)
			assert.Equal(t, 3000, e.Length)
			assert.Equal(t, "lz4", e.Compression)
			assert.Equal(t, n, e.StoredBytes)

			kind, ok := e.KindOf()
			require.True(t, ok)
			assert.Equal(t, alphabet.KindDNA, kind)
		})
	}
}

func TestStoreCatalog(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	s := NewStore(blobs, WithCodec(codec.JSON{}))

	for _, name := range []string{"zeta", "alpha", "mid"} {
		p, err := sequence.FromString(alphabet.Protein, "MKWVTFISLL")
		require.NoError(t, err)
		_, err = s.Save(ctx, name, p)
		require.NoError(t, err)
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "mid", entries[1].Name)
	assert.Equal(t, "zeta", entries[2].Name)

	// Overwrite keeps a single entry.
	p, err := sequence.FromString(alphabet.Protein, "MK")
	require.NoError(t, err)
	_, err = s.Save(ctx, "mid", p)
	require.NoError(t, err)
	entries, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 2, entries[1].Length)

	require.NoError(t, s.Delete(ctx, "mid"))
	_, err = s.Load(ctx, "mid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Stat(ctx, "mid")
	assert.ErrorIs(t, err, ErrNotFound)

	// The catalog is readable by the other codec.
	raw, err := blobs.Get(ctx, CatalogName)
	require.NoError(t, err)
	var cat Catalog
	require.NoError(t, codec.GoJSON{}.Unmarshal(raw, &cat))
	assert.Equal(t, "json", cat.Codec)
	assert.Len(t, cat.Entries, 2)
}

func TestStoreInvalidNames(t *testing.T) {
	ctx := context.Background()
	s := NewStore(blobstore.NewMemoryStore())
	p, err := sequence.FromString(alphabet.DNA, "ACGT")
	require.NoError(t, err)

	for _, name := range []string{"", "a/b", `a\b`, "..", "."} {
		_, err := s.Save(ctx, name, p)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestStoreVerify(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	s := NewStore(blobs, WithCompression(CompressionNone))

	p, err := sequence.FromString(alphabet.DNA, "ACGTACGTACGT")
	require.NoError(t, err)
	_, err = s.Save(ctx, "good", p)
	require.NoError(t, err)
	_, err = s.Save(ctx, "bad", p)
	require.NoError(t, err)

	data, err := blobs.Get(ctx, blobName("bad"))
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, blobs.Put(ctx, blobName("bad"), data))

	require.NoError(t, blobs.Put(ctx, blobName("orphan"), data))

	problems, err := s.Verify(ctx)
	require.NoError(t, err)
	assert.Len(t, problems, 2)
	assert.ErrorIs(t, problems["bad"], ErrChecksum)
	assert.ErrorIs(t, problems["orphan"], ErrNotFound)
}

func TestStoreThrottled(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 30})
	s := NewStore(blobstore.NewMemoryStore(), WithResourceController(rc))

	p, err := sequence.FromString(alphabet.RNA, "ACGU")
	require.NoError(t, err)
	_, err = s.Save(ctx, "r", p)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Load(cancelled, "r")
	assert.Error(t, err)
}
