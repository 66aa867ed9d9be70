package web

import (
	"net"
	"strings"
)

// ExtractorSource reads a value from the request.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value, or ("", false).
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := strings.TrimSpace(c.Header(name))
		return v, v != ""
	}
}

// FromForwardedFor reads the first hop of X-Forwarded-For, the client as
// reported by the outermost proxy.
func FromForwardedFor() ExtractorSource {
	return func(c Context) (string, bool) {
		first, _, _ := strings.Cut(c.Header("X-Forwarded-For"), ",")
		first = strings.TrimSpace(first)
		return first, first != ""
	}
}

// FromRemoteAddr reads the host part of the connection's remote address.
func FromRemoteAddr() ExtractorSource {
	return func(c Context) (string, bool) {
		host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
		if err != nil {
			host = c.Request().RemoteAddr
		}
		return host, host != ""
	}
}

// Fixed always yields v. Place it last as a fallback.
func Fixed(v string) ExtractorSource {
	return func(Context) (string, bool) { return v, v != "" }
}
