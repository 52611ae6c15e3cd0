package api

import (
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// loggingTransport decorates a RoundTripper with one log line per exchange.
type loggingTransport struct {
	next   http.RoundTripper
	logger log.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	defer func(begin time.Time) {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		lvl := level.Debug
		if err != nil || status >= http.StatusInternalServerError {
			lvl = level.Warn
		}
		lvl(t.logger).Log(
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.RoundTrip(req)
}
