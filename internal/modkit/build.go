package modkit

import (
	"net/http"
	"strings"

	"codemix/internal/modkit/httpkit"
)

// Built is the resolved option set
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order; later options win. It panics on a missing
// name since that is a wiring bug.
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if strings.TrimSpace(c.name) == "" {
		panic("modkit: module built without a name")
	}
	prefix := strings.TrimRight(c.prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return Built{
		Name:   c.name,
		Prefix: prefix,
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// Routes binds register to the built name, prefix and middleware
func (b Built) Routes(register func(httpkit.Router)) Routes {
	return Routes{name: b.Name, prefix: b.Prefix, mw: b.Mw, register: register}
}

// Routes is the routing half of a module; embed it and add Ports
type Routes struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// Name returns the module name
func (r Routes) Name() string { return r.name }

// Prefix returns the mount prefix, "" for route-less modules
func (r Routes) Prefix() string { return r.prefix }

// Middlewares returns the module scoped middleware
func (r Routes) Middlewares() []func(http.Handler) http.Handler { return r.mw }

// MountRoutes registers the module's routes under its prefix. Modules
// without routes mount nothing.
func (r Routes) MountRoutes(root httpkit.Router) {
	if r.register == nil {
		return
	}
	if r.prefix == "" {
		root.Group(func(g httpkit.Router) {
			for _, m := range r.mw {
				g.Use(m)
			}
			r.register(g)
		})
		return
	}
	httpkit.MountUnder(root, r.prefix, r.mw, r.register)
}
