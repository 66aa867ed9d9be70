package web

import (
	"errors"
	"net/http"
)

type statusCoder interface {
	StatusCode() int
}

// JSONErrorHandler renders {"error": message}.
//
// An *HTTPError supplies both status and message. Any other error exposing
// StatusCode() int gets that status with the standard status text. The rest
// become 500. Responses with a 5xx status are logged with their cause.
func JSONErrorHandler(c Context, err error) error {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var sc statusCoder
	if he, ok := AsHTTPError(err); ok {
		code, message = he.Code, he.Message
	} else if errors.As(err, &sc) {
		code = sc.StatusCode()
		message = http.StatusText(code)
	}

	if code >= http.StatusInternalServerError {
		c.LogError("request failed",
			"status", code,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	return c.JSON(code, map[string]string{"error": message})
}
