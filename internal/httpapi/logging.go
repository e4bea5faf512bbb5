package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"localllmui/internal/logging"
)

// requestLogger derives a per-request logger from base. The level can be
// overridden with ?log=<level> (log=1 means debug) or the X-Log-Level header.
func requestLogger(r *http.Request, base zerolog.Logger) zerolog.Logger {
	l := base
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			l = l.Level(zerolog.DebugLevel)
		} else {
			l = l.Level(logging.ParseLevel(v))
		}
	} else if v := r.Header.Get("X-Log-Level"); v != "" {
		l = l.Level(logging.ParseLevel(v))
	}
	ctx := l.With().Str("path", r.URL.Path)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ctx = ctx.Str("request_id", rid)
	}
	return ctx.Logger()
}
