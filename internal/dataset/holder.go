package dataset

import (
	"context"
	"sync"
)

// CatalogLoader produces a fresh catalog.
type CatalogLoader interface {
	LoadAll(ctx context.Context) (*Catalog, error)
}

// Holder hands out the current catalog and swaps it on reload.
type Holder struct {
	mu      sync.RWMutex
	catalog *Catalog

	reloadLock sync.Mutex
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Get() (*Catalog, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.catalog == nil {
		return nil, ErrNotLoaded
	}
	return h.catalog, nil
}

func (h *Holder) Set(c *Catalog) {
	h.mu.Lock()
	h.catalog = c
	h.mu.Unlock()
}

// Reload loads a new catalog and swaps it in. On error the current catalog
// stays in place; a dataset that failed on its own is taken over from the
// current catalog when it has one. Concurrent reloads run one after another.
func (h *Holder) Reload(ctx context.Context, loader CatalogLoader) (*Catalog, error) {
	h.reloadLock.Lock()
	defer h.reloadLock.Unlock()

	c, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	prev := h.catalog
	h.mu.RUnlock()
	c.reuse(prev)

	h.Set(c)
	return c, nil
}
