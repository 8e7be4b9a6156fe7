// Package views tracks when cached renderings of a page go stale.
package views

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Revalidator holds a monotonically increasing version per path. Readers tag
// responses with the version; writers bump it after a mutation. Safe for
// concurrent use.
//
// Versions live in memory, so every tag also carries a random epoch: tags
// issued by a previous process or another replica never match.
type Revalidator struct {
	epoch    string
	versions sync.Map // path -> *atomic.Uint64
}

func NewRevalidator() *Revalidator {
	return &Revalidator{epoch: strings.ReplaceAll(uuid.NewString(), "-", "")[:12]}
}

func (r *Revalidator) counter(path string) *atomic.Uint64 {
	if v, ok := r.versions.Load(path); ok {
		return v.(*atomic.Uint64)
	}
	v, _ := r.versions.LoadOrStore(path, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// Invalidate marks every cached rendering of path as stale.
func (r *Revalidator) Invalidate(path string) {
	r.counter(path).Add(1)
}

func (r *Revalidator) Version(path string) uint64 {
	return r.counter(path).Load()
}

// ETag is the strong validator for the current version of path, suffixed
// with variant when the rendering depends on query parameters.
func (r *Revalidator) ETag(path, variant string) string {
	tag := fmt.Sprintf("%s-%s-v%d", strings.Trim(path, "/"), r.epoch, r.Version(path))
	if variant != "" {
		tag += "-" + variant
	}
	return `"` + strings.ReplaceAll(tag, "/", ".") + `"`
}

// NotModified sets the ETag header on w and reports whether req already
// holds that version, in which case it has answered 304.
func (r *Revalidator) NotModified(w http.ResponseWriter, req *http.Request, path, variant string) bool {
	etag := r.ETag(path, variant)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	for _, candidate := range strings.Split(req.Header.Get("If-None-Match"), ",") {
		if strings.TrimSpace(candidate) == etag {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}
