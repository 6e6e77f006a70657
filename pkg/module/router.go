package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path
// segment, falling back to a native ServeMux for unmatched paths.
type Router struct {
	mounts   map[string]*Module
	fallback *http.ServeMux
}

// NewRouter creates a Router with no mounted modules.
func NewRouter() *Router {
	return &Router{
		mounts:   make(map[string]*Module),
		fallback: http.NewServeMux(),
	}
}

// Mount registers a module to handle requests matching its prefix.
func (r *Router) Mount(m *Module) {
	r.mounts[m.prefix] = m
}

// HandleNative registers a handler on the fallback mux for paths no
// module claims, such as health probes.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.fallback.HandleFunc(pattern, handler)
}

// ServeHTTP dispatches to the matching module or falls back to the native mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if m, ok := r.mounts[firstSegment(req)]; ok {
		m.Serve(w, req)
		return
	}

	r.fallback.ServeHTTP(w, req)
}

// firstSegment returns the leading path segment, so /api, /api/, and
// /api/invoices all dispatch to the module mounted at /api. The request
// is left untouched; modules strip their own prefix on a clone.
func firstSegment(req *http.Request) string {
	rest := strings.TrimPrefix(req.URL.Path, "/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	return "/" + rest
}
