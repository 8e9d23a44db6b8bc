package s3

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/seqpack/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB table keyed by base_uri and version.
type mockDDBClient struct {
	mu    sync.Mutex
	items map[string]map[uint64]map[string]types.AttributeValue
	err   error
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[uint64]map[string]types.AttributeValue)}
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	uri := params.Item["base_uri"].(*types.AttributeValueMemberS).Value
	version, err := strconv.ParseUint(params.Item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
	if err != nil {
		return nil, err
	}
	if m.items[uri] == nil {
		m.items[uri] = make(map[uint64]map[string]types.AttributeValue)
	}
	if aws.ToString(params.ConditionExpression) == "attribute_not_exists(version)" {
		if _, exists := m.items[uri][version]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}
	m.items[uri][version] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	uri := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value
	versions := make([]uint64, 0, len(m.items[uri]))
	for v := range m.items[uri] {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })
	if params.Limit != nil && int(*params.Limit) < len(versions) {
		versions = versions[:*params.Limit]
	}

	out := &dynamodb.QueryOutput{}
	for _, v := range versions {
		out.Items = append(out.Items, m.items[uri][v])
	}
	return out, nil
}

// racingBlobs lets a second writer commit between the first writer's
// version lookup and its conditional write.
type racingBlobs struct {
	blobstore.Store
	onPut func(name string)
}

func (r *racingBlobs) Put(ctx context.Context, name string, data []byte) error {
	if r.onPut != nil {
		fn := r.onPut
		r.onPut = nil
		fn(name)
	}
	return r.Store.Put(ctx, name, data)
}

func TestCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store := NewCommitStore(blobstore.NewMemoryStore(), newMockDDBClient(), "commits", "s3://bucket/genomes")

	_, err := store.Get(context.Background(), DefaultCommitName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	version, err := store.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestCommitStore_LatestVersionWins(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	store := NewCommitStore(blobs, newMockDDBClient(), "commits", "s3://bucket/genomes")

	for _, body := range []string{`{"v":1}`, `{"v":2}`, `{"v":3}`} {
		require.NoError(t, store.Put(ctx, DefaultCommitName, []byte(body)))
	}

	got, err := store.Get(ctx, DefaultCommitName)
	require.NoError(t, err)
	assert.Equal(t, `{"v":3}`, string(got))

	version, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), version)

	// Every version stays in the underlying store.
	history, err := blobs.List(ctx, commitPrefix)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestCommitStore_PassThroughAndList(t *testing.T) {
	ctx := context.Background()
	store := NewCommitStore(blobstore.NewMemoryStore(), newMockDDBClient(), "commits", "s3://bucket/genomes")

	require.NoError(t, store.Put(ctx, "seqs/chr1.sqpk", []byte("SQPK")))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"seqs/chr1.sqpk"}, names)

	require.NoError(t, store.Put(ctx, DefaultCommitName, []byte("{}")))
	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultCommitName, "seqs/chr1.sqpk"}, names)

	names, err = store.List(ctx, "seqs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"seqs/chr1.sqpk"}, names)

	require.NoError(t, store.Delete(ctx, "seqs/chr1.sqpk"))
	assert.Error(t, store.Delete(ctx, DefaultCommitName))
}

func TestCommitStore_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	mem := blobstore.NewMemoryStore()
	blobs := &racingBlobs{Store: mem}
	store := NewCommitStore(blobs, ddb, "commits", "s3://bucket/genomes")
	rival := NewCommitStore(mem, ddb, "commits", "s3://bucket/genomes")

	blobs.onPut = func(string) {
		require.NoError(t, rival.Put(ctx, DefaultCommitName, []byte("rival")))
	}
	err := store.Put(ctx, DefaultCommitName, []byte("loser"))
	require.ErrorIs(t, err, ErrConcurrentModification)

	got, err := store.Get(ctx, DefaultCommitName)
	require.NoError(t, err)
	assert.Equal(t, "rival", string(got))

	// The losing version blob was removed again.
	history, err := mem.List(ctx, commitPrefix)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCommitStore_IsolatedNamespaces(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	a := NewCommitStore(blobstore.NewMemoryStore(), ddb, "commits", "s3://bucket/a")
	b := NewCommitStore(blobstore.NewMemoryStore(), ddb, "commits", "s3://bucket/b", WithCommitName("index.json"))

	require.NoError(t, a.Put(ctx, DefaultCommitName, []byte("a")))
	require.NoError(t, b.Put(ctx, "index.json", []byte("b")))

	va, err := a.Version(ctx)
	require.NoError(t, err)
	vb, err := b.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), va)
	assert.Equal(t, uint64(1), vb)

	// For b the catalog name is an ordinary blob.
	_, err = b.Get(ctx, DefaultCommitName)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCommitStore_QueryError(t *testing.T) {
	ddb := newMockDDBClient()
	ddb.err = errors.New("throttled")
	store := NewCommitStore(blobstore.NewMemoryStore(), ddb, "commits", "s3://bucket/genomes")

	err := store.Put(context.Background(), DefaultCommitName, []byte("{}"))
	assert.ErrorContains(t, err, "throttled")
	_, err = store.Get(context.Background(), DefaultCommitName)
	assert.ErrorContains(t, err, "throttled")
}
