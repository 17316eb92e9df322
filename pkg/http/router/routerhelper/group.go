package routerhelper

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers httprouter handles under a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{router: g.router, prefix: g.prefix + path}
}

func (g *RouteGroup) path(p string) string {
	if g.prefix == "" || g.prefix == "/" {
		return p
	}
	if p == "/" {
		return g.prefix
	}
	return g.prefix + p
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.router.GET(g.path(path), handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.router.POST(g.path(path), handle)
}

func (g *RouteGroup) Handler(method, path string, handler http.Handler) {
	g.router.Handler(method, g.path(path), handler)
}
