package web

// Handler declares routes on a router.
//
// Example:
//
//	type ContentHandler struct {
//	    svc *content.Service
//	}
//
//	func (h *ContentHandler) Routes(r web.Router) {
//	    r.GET("/posts", h.listPosts)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
