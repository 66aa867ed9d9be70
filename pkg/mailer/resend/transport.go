package resend

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 8 << 10

type trapKey struct{}

// responseTrap records the raw status and body of a failed call. The client
// library only surfaces a parsed message, while callers need the provider's
// own status text and payload.
type responseTrap struct {
	status string
	body   string
	code   int
}

func withTrap(ctx context.Context) (context.Context, *responseTrap) {
	t := &responseTrap{}
	return context.WithValue(ctx, trapKey{}, t), t
}

type trapTransport struct {
	next http.RoundTripper
}

func (t trapTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode < 300 {
		return resp, err
	}

	trap, ok := req.Context().Value(trapKey{}).(*responseTrap)
	if !ok {
		return resp, nil
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	if readErr != nil {
		return resp, nil
	}

	trap.code = resp.StatusCode
	trap.status = statusText(resp)
	trap.body = strings.TrimSpace(string(raw))

	return resp, nil
}

// statusText returns "Not Found" for "404 Not Found".
func statusText(resp *http.Response) string {
	s := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if s == "" {
		s = http.StatusText(resp.StatusCode)
	}
	return s
}
