package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/portfolio/internal/web"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig provides sensible defaults for CORS.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins:    []string{"*"},
	AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	MaxAge:          DefaultCORSMaxAge,
	PreflightStatus: http.StatusNoContent,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOriginFunc overrides AllowOrigins when set.
	AllowOriginFunc func(origin string) bool

	// AllowOrigins lists allowed origins. "*" allows any.
	AllowOrigins  []string
	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string

	MaxAge time.Duration

	// PreflightStatus is the status of answered OPTIONS requests.
	PreflightStatus int

	// AllowCredentials echoes the request origin instead of "*".
	AllowCredentials bool

	// Public sends the headers on every response, whether or not the request
	// carries an Origin header.
	Public bool
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOrigins = origins }
}

func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOriginFunc = fn }
}

func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowMethods = methods }
}

func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowHeaders = headers }
}

func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.ExposeHeaders = headers }
}

func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowCredentials = true }
}

// WithMaxAge sets the preflight cache duration. Zero omits the header.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) { cfg.MaxAge = d }
}

// WithPreflightStatus sets the status of preflight answers. Default: 204.
func WithPreflightStatus(code int) CORSOption {
	return func(cfg *CORSConfig) { cfg.PreflightStatus = code }
}

// WithPublic attaches the headers to every response.
func WithPublic() CORSOption {
	return func(cfg *CORSConfig) { cfg.Public = true }
}

// PublicCORSHeaders are the request headers browsers may send to the public API.
var PublicCORSHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// PublicExposeHeaders are the response headers browser scripts may read:
// the wait hint of a 429 and the ID to quote when reporting a failure.
var PublicExposeHeaders = []string{"Retry-After", "X-Request-ID"}

// PublicCORS is CORS for an open JSON API: every response, errors included,
// carries Access-Control-Allow-Origin: * and the allowed headers, and a
// preflight is answered with an empty 200.
func PublicCORS(opts ...CORSOption) web.Middleware {
	base := []CORSOption{
		WithAllowOrigins("*"),
		WithAllowHeaders(PublicCORSHeaders...),
		WithExposeHeaders(PublicExposeHeaders...),
		WithPreflightStatus(http.StatusOK),
		WithMaxAge(0),
		WithPublic(),
	}
	return CORS(append(base, opts...)...)
}

// CORS returns middleware that answers preflight requests and adds CORS
// headers to responses.
func CORS(opts ...CORSOption) web.Middleware {
	cfg := DefaultCORSConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.PreflightStatus == 0 {
		cfg.PreflightStatus = http.StatusNoContent
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))
	hasWildcard := slices.Contains(cfg.AllowOrigins, "*")

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			origin := c.Header("Origin")
			preflight := c.Request().Method == http.MethodOptions

			if origin == "" && !cfg.Public {
				return next(c)
			}
			if origin != "" && !isOriginAllowed(origin, &cfg, hasWildcard) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")

			switch {
			case origin != "" && (cfg.AllowCredentials || !hasWildcard):
				h.Set("Access-Control-Allow-Origin", origin)
			case hasWildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			}

			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			if cfg.Public && allowHeaders != "" {
				h.Set("Access-Control-Allow-Headers", allowHeaders)
			}

			if preflight {
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", maxAge)
				}
				return c.NoContent(cfg.PreflightStatus)
			}

			return next(c)
		}
	}
}

func isOriginAllowed(origin string, cfg *CORSConfig, hasWildcard bool) bool {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	if hasWildcard {
		return true
	}
	return slices.Contains(cfg.AllowOrigins, origin)
}
