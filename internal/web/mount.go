package web

// Mount groups handlers under a path prefix with shared middleware.
// Middleware runs for every request under the prefix, including ones that
// match no route, so CORS preflight for any /api path is answered.
func Mount(prefix string, mw []Middleware, handlers ...Handler) Handler {
	return &mount{prefix: prefix, middlewares: mw, handlers: handlers}
}

type mount struct {
	prefix      string
	middlewares []Middleware
	handlers    []Handler
}

func (m *mount) Routes(r Router) {
	r.Route(m.prefix, func(r Router) {
		r.Use(m.middlewares...)
		for _, h := range m.handlers {
			h.Routes(r)
		}
	})
}
