package contact

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrymomot/portfolio/internal/repository"
	"github.com/dmitrymomot/portfolio/internal/web"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
)

// maxBodyBytes comfortably fits the largest valid submission.
const maxBodyBytes = 64 << 10

// Submitter accepts a validated submission. *Service implements it.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (repository.Contact, error)
}

// Handler serves POST /contact.
type Handler struct {
	svc          Submitter
	middlewares  []web.Middleware
	legacyStatus bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLegacyErrorStatus reports validation failures as 500.
func WithLegacyErrorStatus(enabled bool) HandlerOption {
	return func(h *Handler) { h.legacyStatus = enabled }
}

// WithMiddleware adds route middleware to POST /contact, e.g. the quota.
func WithMiddleware(mw ...web.Middleware) HandlerOption {
	return func(h *Handler) { h.middlewares = append(h.middlewares, mw...) }
}

func NewHandler(svc Submitter, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Routes(r web.Router) {
	r.OPTIONS("/contact", preflight)
	r.POST("/contact", h.submit, h.middlewares...)
}

func preflight(c web.Context) error {
	return c.NoContent(http.StatusOK)
}

type successResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (h *Handler) submit(c web.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes))
	if err != nil {
		return h.validationError(invalidBody(err))
	}

	sub, err := ParseSubmission(body)
	if err == nil {
		err = sub.Validate()
	}
	if err != nil {
		return h.validationError(err)
	}

	saved, err := h.svc.Submit(c.Context(), sub)
	if err != nil {
		return submitError(err)
	}

	c.LogInfo("contact submission accepted", "contact_id", saved.ID.String())
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: msgSuccess})
}

func (h *Handler) validationError(err error) error {
	code := http.StatusBadRequest
	if h.legacyStatus {
		code = http.StatusInternalServerError
	}
	he := web.NewHTTPError(code, validationMessage(err))
	he.Err = err
	return he
}

func submitError(err error) error {
	switch {
	case errors.Is(err, ErrPersistence):
		return web.ErrInternal(msgSaveFailed, web.WithError(err))
	case errors.Is(err, ErrDelivery):
		if apiErr, ok := resend.AsAPIError(err); ok {
			return web.ErrInternal(apiErr.Error(), web.WithError(err))
		}
		return web.ErrInternal(msgDeliveryFailed, web.WithError(err))
	default:
		return web.ErrInternal(msgDeliveryFailed, web.WithError(err))
	}
}
