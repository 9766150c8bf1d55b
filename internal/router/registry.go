package router

import "github.com/gin-gonic/gin"

type mount struct {
	prefix string
	mod    Module
}

// Registry collects modules and mounts each under its route prefix.
type Registry struct {
	Engine      *gin.Engine
	middlewares []gin.HandlerFunc
	mounts      []mount
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine}
}

// Use adds middleware applied to every mounted group.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// Add mounts mod under prefix, e.g. "/api" or "/auth".
func (r *Registry) Add(prefix string, mod Module) {
	r.mounts = append(r.mounts, mount{prefix: prefix, mod: mod})
}

func (r *Registry) RegisterAll() {
	groups := map[string]*gin.RouterGroup{}
	for _, m := range r.mounts {
		g, ok := groups[m.prefix]
		if !ok {
			g = r.Engine.Group(m.prefix, r.middlewares...)
			groups[m.prefix] = g
		}
		m.mod.Register(g)
	}
}
