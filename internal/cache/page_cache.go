// internal/cache/page_cache.go

// Package cache holds rendered storefront pages so repeat reads skip the
// catalog entirely. The admin surface invalidates affected paths on every
// successful mutation; readers see fresh data on the next request.
package cache

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

type entry struct {
	status      int
	contentType string
	body        []byte
}

type PageCache struct {
	mtx     sync.RWMutex
	entries map[string]entry
}

func NewPageCache() *PageCache {
	return &PageCache{entries: make(map[string]entry)}
}

// cacheKey includes the query string, so filtered and sorted renders of
// the same path cache as separate entries.
func cacheKey(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

func (pc *PageCache) get(key string) (entry, bool) {
	pc.mtx.RLock()
	defer pc.mtx.RUnlock()
	e, ok := pc.entries[key]
	return e, ok
}

func (pc *PageCache) set(key string, e entry) {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()
	pc.entries[key] = e
}

// Invalidate drops cached renders for the given paths, including every
// query variant of each path. A path ending in "/" drops every cached
// path under that prefix.
func (pc *PageCache) Invalidate(paths ...string) {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()

	for _, path := range paths {
		if strings.HasSuffix(path, "/") && path != "/" {
			for cached := range pc.entries {
				if strings.HasPrefix(cached, path) {
					delete(pc.entries, cached)
				}
			}
			continue
		}
		delete(pc.entries, path)
		for cached := range pc.entries {
			if strings.HasPrefix(cached, path+"?") {
				delete(pc.entries, cached)
			}
		}
	}
}

// InvalidateAll empties the cache.
func (pc *PageCache) InvalidateAll() {
	pc.mtx.Lock()
	defer pc.mtx.Unlock()
	pc.entries = make(map[string]entry)
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves cached GET responses and captures fresh 200s on miss.
func (pc *PageCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c.Request.URL)
		if e, ok := pc.get(key); ok {
			c.Data(e.status, e.contentType, e.body)
			c.Abort()
			return
		}

		bcw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = bcw
		c.Next()

		if bcw.Status() == http.StatusOK {
			pc.set(key, entry{
				status:      bcw.Status(),
				contentType: bcw.Header().Get("Content-Type"),
				body:        bcw.body.Bytes(),
			})
		}
	}
}
