package client

import (
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// newCachingTransport returns a transport that caches GET responses per
// their Cache-Control headers. It sits beneath the auth transport so cached
// entries are keyed on the bare request.
func newCachingTransport(cacheDir string) http.RoundTripper {
	if cacheDir == "" {
		// Use in-memory cache if no cache directory specified
		return httpcache.NewTransport(httpcache.NewMemoryCache())
	}

	// Use disk-based cache for persistence across runs
	return httpcache.NewTransport(diskcache.New(cacheDir))
}
