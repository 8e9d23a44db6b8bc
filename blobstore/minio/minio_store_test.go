package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/seqpack/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ blobstore.Store = (*Store)(nil)

func TestStoreKey(t *testing.T) {
	s := NewStore(nil, "bucket", "seqpack/")
	assert.Equal(t, "seqpack/chr1.sqpk", s.key("chr1.sqpk"))
	assert.Equal(t, "chr1.sqpk", NewStore(nil, "bucket", "").key("chr1.sqpk"))
	assert.Equal(t, "a/b/seqs/x.sqpk", NewStore(nil, "bucket", "/a/b/").key("seqs/x.sqpk"))

	assert.Equal(t, "seqs/x.sqpk", s.rel("seqpack/seqs/x.sqpk"))
	assert.Equal(t, "catalog.json", NewStore(nil, "bucket", "").rel("catalog.json"))
}

func TestStoreOptions(t *testing.T) {
	s := NewStore(nil, "bucket", "", WithPartSize(16<<20))
	assert.Equal(t, uint64(16<<20), s.partSize)
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	endpoint := "localhost:9000"
	bucket := "test-seqpack"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("ACGTACGT packed")
	require.NoError(t, store.Put(ctx, "chr1.sqpk", data))

	got, err := store.Get(ctx, "chr1.sqpk")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "chr1.sqpk")

	require.NoError(t, store.Delete(ctx, "chr1.sqpk"))
	_, err = store.Get(ctx, "chr1.sqpk")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
