package seqpack

import (
	"context"

	"github.com/hupe1980/seqpack/blobstore"
	"github.com/hupe1980/seqpack/persistence"
	"github.com/hupe1980/seqpack/sequence"
)

// OpenStore returns a sequence store over blobs whose transfers are
// throttled by the engine's IO limit.
func (e *Engine) OpenStore(blobs blobstore.Store, opts ...persistence.StoreOption) *persistence.Store {
	opts = append([]persistence.StoreOption{persistence.WithResourceController(e.rc)}, opts...)
	return persistence.NewStore(blobs, opts...)
}

// Save writes p to store under name.
func (e *Engine) Save(ctx context.Context, store *persistence.Store, name string, p *sequence.Packed) error {
	_, err := store.Save(ctx, name, p)
	symbols := 0
	if p != nil {
		symbols = p.Len()
	}
	e.logger.LogSave(ctx, name, symbols, err)
	return translateError(err)
}

// Load reads the sequence saved under name. Like Build, the packed bytes
// count against the memory limit until Release.
func (e *Engine) Load(ctx context.Context, store *persistence.Store, name string) (*sequence.Packed, error) {
	p, err := store.Load(ctx, name)
	if err == nil {
		if err = e.reserve(p); err != nil {
			p = nil
		}
	}
	symbols := 0
	if p != nil {
		symbols = p.Len()
	}
	e.logger.LogLoad(ctx, name, symbols, err)
	return p, translateError(err)
}
