package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/blobstore"
	"github.com/hupe1980/seqpack/codec"
	"github.com/hupe1980/seqpack/resource"
	"github.com/hupe1980/seqpack/sequence"
)

const (
	// CatalogName is the blob holding the catalog.
	CatalogName = "catalog.json"
	// CatalogVersion is the current catalog schema version.
	CatalogVersion = 1

	seqPrefix = "seqs/"
	seqSuffix = ".sqpk"
)

var (
	// ErrInvalidName is returned for names that cannot be used as blob keys.
	ErrInvalidName = errors.New("invalid sequence name")
	// ErrNotFound is returned when no sequence is saved under a name.
	ErrNotFound = blobstore.ErrNotFound
)

// Entry describes one saved sequence.
type Entry struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Length      int    `json:"length"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Compression string `json:"compression"`
	StoredBytes int    `json:"stored_bytes"`
}

// Catalog lists every saved sequence, sorted by name.
type Catalog struct {
	Version int     `json:"version"`
	Codec   string  `json:"codec"`
	Entries []Entry `json:"entries"`
}

// Store saves and loads named sequences in a blobstore.
type Store struct {
	blobs       blobstore.Store
	codec       codec.Codec
	compression Compression
	rc          *resource.Controller

	// serializes catalog read-modify-write cycles
	mu sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression sets the payload compression for saved sequences.
func WithCompression(c Compression) StoreOption {
	return func(s *Store) { s.compression = c }
}

// WithCodec sets the catalog codec.
func WithCodec(c codec.Codec) StoreOption {
	return func(s *Store) { s.codec = c }
}

// WithResourceController throttles blob transfers through rc.
func WithResourceController(rc *resource.Controller) StoreOption {
	return func(s *Store) { s.rc = rc }
}

// NewStore creates a store over blobs. Defaults: zstd compression and the
// default codec.
func NewStore(blobs blobstore.Store, opts ...StoreOption) *Store {
	s := &Store{
		blobs:       blobs,
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func blobName(name string) string { return seqPrefix + name + seqSuffix }

// Save encodes p and writes it under name, replacing any previous
// sequence of that name. It returns the stored size in bytes.
func (s *Store) Save(ctx context.Context, name string, p *sequence.Packed) (int, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	data, err := Encode(p, s.compression)
	if err != nil {
		return 0, err
	}
	h, err := ReadHeader(data)
	if err != nil {
		return 0, err
	}

	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return 0, err
	}
	if err := s.blobs.Put(ctx, blobName(name), data); err != nil {
		return 0, fmt.Errorf("save %q: %w", name, err)
	}

	meta := p.Metadata()
	entry := Entry{
		Name:        name,
		Kind:        p.Kind().String(),
		Length:      p.Len(),
		ID:          meta.ID,
		Description: meta.Description,
		Compression: h.Compression.String(),
		StoredBytes: len(data),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.readCatalog(ctx)
	if err != nil {
		return 0, err
	}
	cat.upsert(entry)
	if err := s.writeCatalog(ctx, cat); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Load reads the sequence saved under name, restoring its metadata.
func (s *Store) Load(ctx context.Context, name string) (*sequence.Packed, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := s.blobs.Get(ctx, blobName(name))
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	entry, err := s.Stat(ctx, name)
	switch {
	case err == nil:
		p = p.WithMetadata(sequence.Metadata{ID: entry.ID, Description: entry.Description})
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	return p, nil
}

// Stat returns the catalog entry for name.
func (s *Store) Stat(ctx context.Context, name string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.readCatalog(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range cat.Entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("sequence %q: %w", name, ErrNotFound)
}

// Delete removes the sequence and its catalog entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, blobName(name)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.readCatalog(ctx)
	if err != nil {
		return err
	}
	if !cat.remove(name) {
		return nil
	}
	return s.writeCatalog(ctx, cat)
}

// List returns the catalog entries sorted by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.readCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Entries, nil
}

// Verify decodes every saved blob and reports the names whose data is
// missing or fails its checksum, along with blobs absent from the catalog.
func (s *Store) Verify(ctx context.Context) (map[string]error, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	problems := make(map[string]error)
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[blobName(e.Name)] = true
		data, err := s.blobs.Get(ctx, blobName(e.Name))
		if err == nil {
			_, err = Decode(data)
		}
		if err != nil {
			problems[e.Name] = err
		}
	}

	names, err := s.blobs.List(ctx, seqPrefix)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if !known[n] {
			name := strings.TrimSuffix(strings.TrimPrefix(n, seqPrefix), seqSuffix)
			problems[name] = fmt.Errorf("%w: blob %q not in catalog", ErrNotFound, n)
		}
	}
	return problems, nil
}

func (s *Store) readCatalog(ctx context.Context) (*Catalog, error) {
	data, err := s.blobs.Get(ctx, CatalogName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return &Catalog{Version: CatalogVersion, Codec: s.codec.Name()}, nil
	}
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := s.codec.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if cat.Version != CatalogVersion {
		return nil, fmt.Errorf("unsupported catalog version: %d (expected %d)", cat.Version, CatalogVersion)
	}
	if _, ok := codec.ByName(cat.Codec); !ok {
		return nil, fmt.Errorf("catalog: unknown codec %q", cat.Codec)
	}
	return &cat, nil
}

func (s *Store) writeCatalog(ctx context.Context, cat *Catalog) error {
	cat.Version = CatalogVersion
	cat.Codec = s.codec.Name()
	data, err := s.codec.Marshal(cat)
	if err != nil {
		return err
	}
	return s.blobs.Put(ctx, CatalogName, data)
}

func (c *Catalog) upsert(e Entry) {
	i := sort.Search(len(c.Entries), func(i int) bool { return c.Entries[i].Name >= e.Name })
	if i < len(c.Entries) && c.Entries[i].Name == e.Name {
		c.Entries[i] = e
		return
	}
	c.Entries = append(c.Entries, Entry{})
	copy(c.Entries[i+1:], c.Entries[i:])
	c.Entries[i] = e
}

func (c *Catalog) remove(name string) bool {
	for i, e := range c.Entries {
		if e.Name == name {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// KindOf parses an entry's kind.
func (e Entry) KindOf() (alphabet.Kind, bool) {
	return alphabet.ParseKind(e.Kind)
}
