package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sagarc03/stacks"
)

// Resolver answers requests for one mount. *stacks.Resolver implements it.
type Resolver interface {
	Prefix() string
	Handle(r *http.Request, uri string) *stacks.Response
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	Mounts []Resolver
	CORS   CORSConfig
	// NotFound answers requests no mount claims. Nil serves a small HTML page.
	NotFound http.HandlerFunc
}

// Handler serves mounted directories over HTTP.
type Handler struct {
	config HandlerConfig
}

// NewHandler creates a new Handler with the given configuration.
func NewHandler(config *HandlerConfig) *Handler {
	cfg := *config
	if cfg.NotFound == nil {
		cfg.NotFound = writeDefaultNotFound
	}
	return &Handler{config: cfg}
}

// Router returns an http.Handler with GET and HEAD routes for every mount.
// A mount with prefix "/files" answers "/files" and everything below it; the
// root mount answers everything not claimed by a longer prefix.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(PathValidationMiddleware)
	r.Use(DecodedPath)

	for _, m := range h.config.Mounts {
		serve := h.handleServe(m)
		prefix := m.Prefix()
		if prefix != "" {
			r.Get(prefix, serve)
			r.Head(prefix, serve)
		}
		r.Get(prefix+"/*", serve)
		r.Head(prefix+"/*", serve)
	}

	r.NotFound(h.config.NotFound)

	return r
}

func (h *Handler) handleServe(m Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := m.Handle(r, r.URL.Path)
		if resp == nil {
			h.config.NotFound(w, r)
			return
		}

		if resp.Status != http.StatusOK {
			slog.Debug("resolver response", "path", r.URL.Path, "status", resp.Status, "reason", resp.Reason)
		}

		WriteResponse(w, resp)
	}
}
