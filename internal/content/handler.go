package content

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrymomot/portfolio/internal/web"
)

const maxEventBodyBytes = MaxMetadataBytes + 1<<10

// Handler serves the content read API and event ingestion.
type Handler struct {
	svc              *Service
	eventsMiddleware []web.Middleware
}

// NewHandler creates a Handler. eventsMW wraps POST /events, e.g. a throttle.
func NewHandler(svc *Service, eventsMW ...web.Middleware) *Handler {
	return &Handler{svc: svc, eventsMiddleware: eventsMW}
}

func (h *Handler) Routes(r web.Router) {
	r.GET("/posts", h.listPosts)
	r.GET("/posts/{slug}", h.getPost)
	r.GET("/testimonials", h.listTestimonials)
	r.POST("/events", h.recordEvent, h.eventsMiddleware...)
}

func (h *Handler) listPosts(c web.Context) error {
	posts, err := h.svc.Posts(c.Context())
	if err != nil {
		return web.ErrInternal("Failed to load posts", web.WithError(err))
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) getPost(c web.Context) error {
	post, err := h.svc.Post(c.Context(), c.Param("slug"))
	switch {
	case errors.Is(err, ErrPostNotFound):
		return web.ErrNotFound("Post not found", web.WithError(err))
	case err != nil:
		return web.ErrInternal("Failed to load post", web.WithError(err))
	}
	return c.JSON(http.StatusOK, post)
}

func (h *Handler) listTestimonials(c web.Context) error {
	items, err := h.svc.Testimonials(c.Context())
	if err != nil {
		return web.ErrInternal("Failed to load testimonials", web.WithError(err))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) recordEvent(c web.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxEventBodyBytes))
	if err != nil {
		return web.ErrBadRequest("Invalid request body", web.WithError(err))
	}

	event, err := ParseEvent(body)
	if err == nil {
		err = h.svc.Record(c.Context(), event)
	}
	switch {
	case errors.Is(err, ErrInvalidEvent):
		return web.ErrBadRequest(eventMessage(err), web.WithError(err))
	case err != nil:
		return web.ErrInternal("Failed to record event", web.WithError(err))
	}

	return c.JSON(http.StatusAccepted, map[string]bool{"success": true})
}
