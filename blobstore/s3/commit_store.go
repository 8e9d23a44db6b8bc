package s3

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/hupe1980/seqpack/blobstore"
)

const (
	// DefaultCommitName is the blob routed through DynamoDB by default:
	// the persistence catalog.
	DefaultCommitName = "catalog.json"

	commitPrefix = "commits/"
)

// ErrConcurrentModification is returned when another writer committed the
// same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the subset of the DynamoDB API the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// CommitStore wraps a blob store and versions one blob, the catalog,
// through DynamoDB conditional writes. Each Put of that blob writes an
// immutable "commits/<name>.<version>.<uuid>" object and then claims the next
// version number; a writer that loses the race gets
// ErrConcurrentModification instead of silently replacing the other
// writer's catalog. All other blobs pass straight through.
//
// Table schema:
//   - Partition key: base_uri (string)
//   - Sort key: version (number)
//
//	aws dynamodb create-table \
//	  --table-name seqpack-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	blobs   blobstore.Store
	ddb     DDBClient
	table   string
	baseURI string
	name    string
}

// CommitOption configures a CommitStore.
type CommitOption func(*CommitStore)

// WithCommitName changes which blob is versioned.
func WithCommitName(name string) CommitOption {
	return func(s *CommitStore) { s.name = name }
}

// NewCommitStore versions DefaultCommitName of blobs in table, partitioned
// by baseURI (typically "s3://bucket/prefix").
func NewCommitStore(blobs blobstore.Store, ddb DDBClient, table, baseURI string, optFns ...CommitOption) *CommitStore {
	s := &CommitStore{
		blobs:   blobs,
		ddb:     ddb,
		table:   table,
		baseURI: baseURI,
		name:    DefaultCommitName,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// NewWithCommits creates an S3 store whose catalog commits go through the
// DynamoDB table. Both clients share one AWS configuration.
func NewWithCommits(ctx context.Context, bucket, table string, optFns ...Option) (*CommitStore, error) {
	o := applyOptions(optFns)
	cfg, err := loadConfig(ctx, o)
	if err != nil {
		return nil, err
	}
	store := newStore(newClient(cfg, o), bucket, o)
	baseURI := "s3://" + bucket
	if store.prefix != "" {
		baseURI += "/" + store.prefix
	}
	return NewCommitStore(store, dynamodb.NewFromConfig(cfg), table, baseURI), nil
}

// versionBlob names a candidate version. The random suffix keeps racing
// writers of the same version from overwriting each other's object.
func (s *CommitStore) versionBlob(version uint64) string {
	return fmt.Sprintf("%s%s.%020d.%s", commitPrefix, s.name, version, uuid.NewString())
}

// Put writes a blob. The commit blob is versioned.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name != s.name {
		return s.blobs.Put(ctx, name, data)
	}

	current, _, err := s.latest(ctx)
	if err != nil {
		return err
	}
	next := current + 1
	path := s.versionBlob(next)
	if err := s.blobs.Put(ctx, path, data); err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"base_uri":  &types.AttributeValueMemberS{Value: s.baseURI},
			"version":   &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"blob_path": &types.AttributeValueMemberS{Value: path},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		// The versioned blob is unreferenced either way.
		_ = s.blobs.Delete(ctx, path)

		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("commit %s version %d: %w", s.name, next, ErrConcurrentModification)
		}
		return fmt.Errorf("commit %s: %w", s.name, err)
	}
	return nil
}

// Get reads a blob. The commit blob resolves to its latest version.
func (s *CommitStore) Get(ctx context.Context, name string) ([]byte, error) {
	if name != s.name {
		return s.blobs.Get(ctx, name)
	}
	version, path, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, fmt.Errorf("blob %q: %w", name, blobstore.ErrNotFound)
	}
	return s.blobs.Get(ctx, path)
}

// Delete removes a blob. Committed versions are never deleted.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	if name == s.name || strings.HasPrefix(name, commitPrefix) {
		return fmt.Errorf("blob %q is commit history and cannot be deleted", name)
	}
	return s.blobs.Delete(ctx, name)
}

// List returns blob names with the given prefix. Versioned commit blobs are
// hidden; the commit blob is listed once it has a version.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if !strings.HasPrefix(n, commitPrefix) {
			out = append(out, n)
		}
	}
	if strings.HasPrefix(s.name, prefix) {
		version, _, err := s.latest(ctx)
		if err != nil {
			return nil, err
		}
		if version > 0 {
			if i := sort.SearchStrings(out, s.name); i == len(out) || out[i] != s.name {
				out = slices.Insert(out, i, s.name)
			}
		}
	}
	return out, nil
}

// Version returns the latest committed version, 0 before the first commit.
func (s *CommitStore) Version(ctx context.Context) (uint64, error) {
	version, _, err := s.latest(ctx)
	return version, err
}

func (s *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
		ConsistentRead:   aws.Bool(true),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query commits: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("commit item: invalid version attribute")
	}
	pathAttr, ok := item["blob_path"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("commit item: invalid blob_path attribute")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("commit item: parse version: %w", err)
	}
	return version, pathAttr.Value, nil
}
