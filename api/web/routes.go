package web

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// Routes maps route names such as "taxi:car-detail" to their path patterns so
// handlers and templates can build links without hard-coding paths.
type Routes struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewRoutes() *Routes {
	return &Routes{names: make(map[string]string)}
}

func (r *Routes) add(name, pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.names[name]; ok && prev != pattern {
		panic(fmt.Sprintf("route %q registered for %s and %s", name, prev, pattern))
	}
	r.names[name] = pattern
}

func fullPath(g *gin.RouterGroup, path string) string {
	return strings.TrimSuffix(g.BasePath(), "/") + path
}

func (r *Routes) GET(g *gin.RouterGroup, name, path string, handlers ...gin.HandlerFunc) {
	r.add(name, fullPath(g, path))
	g.GET(path, handlers...)
}

func (r *Routes) POST(g *gin.RouterGroup, name, path string, handlers ...gin.HandlerFunc) {
	r.add(name, fullPath(g, path))
	g.POST(path, handlers...)
}

// Form registers a page that renders on GET and submits on POST.
func (r *Routes) Form(g *gin.RouterGroup, name, path string, handlers ...gin.HandlerFunc) {
	r.add(name, fullPath(g, path))
	g.GET(path, handlers...)
	g.POST(path, handlers...)
}

// URL fills the pattern's :params, in order, with args.
func (r *Routes) URL(name string, args ...any) (string, error) {
	r.mu.RLock()
	pattern, ok := r.names[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no route named %q", name)
	}

	segments := strings.Split(pattern, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("route %q: missing value for %s", name, seg)
		}
		segments[i] = url.PathEscape(cast.ToString(args[next]))
		next++
	}
	if next != len(args) {
		return "", fmt.Errorf("route %q takes %d arguments, got %d", name, next, len(args))
	}
	return strings.Join(segments, "/"), nil
}

// MustURL is URL for names known at compile time.
func (r *Routes) MustURL(name string, args ...any) string {
	u, err := r.URL(name, args...)
	if err != nil {
		panic(err)
	}
	return u
}
