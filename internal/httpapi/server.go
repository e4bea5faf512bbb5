package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ChatModel is the provisioned model the chat endpoint talks to.
type ChatModel interface {
	Model() string
	Invoke(ctx context.Context, prompt string) (string, error)
}

// NewMux builds the HTTP surface. A nil model means provisioning failed: the
// chat handler is not mounted and /chat answers 503 instead.
func NewMux(model ChatModel, opts Options) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if opts.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORS.AllowedOrigins,
			AllowedMethods: orDefault(opts.CORS.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			AllowedHeaders: orDefault(opts.CORS.AllowedHeaders, []string{"Content-Type", "X-Log-Level"}),
			MaxAge:         300,
		}))
	}

	r.Get("/", indexHandler)

	if model != nil {
		r.Post("/chat", chatHandler(model, opts))
	} else {
		r.Post("/chat", unavailableHandler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if model != nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// unavailableHandler answers every chat request when no model was provisioned.
//
// @Summary      Chat (model unavailable)
// @Description  Returned instead of a reply when the model could not be provisioned.
// @Tags         chat
// @Produce      json
// @Failure      503  {object}  types.ErrorResponse
// @Router       /chat [post]
func unavailableHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusServiceUnavailable, "model not loaded")
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
