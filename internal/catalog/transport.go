package catalog

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport is an http.RoundTripper that logs outbound catalog
// requests at debug level.
type LoggingTransport struct {
	Base http.RoundTripper
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if !slog.Default().Enabled(req.Context(), slog.LevelDebug) {
		return base.RoundTrip(req)
	}

	start := time.Now()
	slog.DebugContext(req.Context(), "Outbound request", "method", req.Method, "url", req.URL.String())

	resp, err := base.RoundTrip(req)
	if err != nil {
		slog.DebugContext(req.Context(), "Outbound request failed", "url", req.URL.String(), "err", err, "elapsed", time.Since(start))
		return resp, err
	}

	slog.DebugContext(req.Context(), "Outbound response",
		"status", resp.StatusCode,
		"url", req.URL.String(),
		"content_type", resp.Header.Get("Content-Type"),
		"content_length", resp.ContentLength,
		"elapsed", time.Since(start))

	return resp, nil
}
