package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.Normaliser = (*Registry)(nil)

// Registry dispatches to the normaliser registered for a file's extension.
type Registry struct {
	mu       sync.RWMutex
	byExt    map[string]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates a registry holding normalisers. Later registrations
// win for a shared extension.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{byExt: make(map[string]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds n for each of its extensions.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range n.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// SetFallback sets the normaliser used for unregistered extensions.
func (r *Registry) SetFallback(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = n
}

// SupportedExtensions returns every registered extension, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Normalise routes to the normaliser for path's extension.
func (r *Registry) Normalise(ctx context.Context, path string, raw []byte) (*driven.NormaliseResult, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	n, ok := r.byExt[ext]
	if !ok {
		n = r.fallback
	}
	r.mu.RUnlock()

	if n == nil {
		return nil, fmt.Errorf("%w: no normaliser for %q files", domain.ErrInvalidInput, ext)
	}
	return n.Normalise(ctx, path, raw)
}
