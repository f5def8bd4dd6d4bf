package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/challengedb"
)

type Service interface {
	Create(ctx context.Context, in challengedb.ChallengeInput) (int64, error)
	Replace(ctx context.Context, id int64, in challengedb.ChallengeInput) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (challengedb.Challenge, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// BasePath is the mount point of the challenge routes, e.g. "/api/challenge".
	// It must match the base path the verifier signs.
	BasePath string
	Verifier RequestVerifier
	CORS     CORSConfig
	// Metrics is optional. When set, MetricsPath is served from the root.
	Metrics     *Metrics
	MetricsPath string
}

// Handler provides HTTP handlers for challenge operations.
type Handler struct {
	config  HandlerConfig
	service Service
}

// writeRequest is the body of CREATE and REPLACE requests.
type writeRequest struct {
	Challenge challengedb.ChallengeInput `json:"challenge"`
	Digest    string                     `json:"digest"`
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	cfg := *config
	cfg.BasePath = challengedb.NormalizeBasePath(cfg.BasePath)
	return &Handler{
		config:  cfg,
		service: service,
	}
}

// Router returns an http.Handler serving the four challenge routes under the
// configured base path, plus the metrics endpoint when metrics are enabled.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
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

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	if h.config.Metrics != nil && h.config.MetricsPath != "" {
		r.Method(http.MethodGet, h.config.MetricsPath, h.config.Metrics.Handler())
	}

	if h.config.BasePath == "" {
		h.routes(r)
	} else {
		r.Route(h.config.BasePath, h.routes)
	}

	return r
}

func (h *Handler) routes(r chi.Router) {
	m := h.config.Metrics
	v := h.config.Verifier

	r.With(m.Middleware(challengedb.OpCreate), AuthMiddleware(v, challengedb.OpCreate)).
		Post("/", h.handleCreate)
	r.With(m.Middleware(challengedb.OpReplace), AuthMiddleware(v, challengedb.OpReplace)).
		Put("/{itemId}", h.handleReplace)
	r.With(m.Middleware(challengedb.OpDelete), AuthMiddleware(v, challengedb.OpDelete)).
		Delete("/{itemId}", h.handleDelete)
	r.With(m.Middleware(challengedb.OpRead), AuthMiddleware(v, challengedb.OpRead)).
		Get("/{itemId}", h.handleRead)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("create challenge: decode body", "err", err)
		h.respond(w, challengedb.OpCreate, Response{Reason: ReasonCreateFailed})
		return
	}

	id, err := h.service.Create(r.Context(), req.Challenge)
	if err != nil {
		slog.Error("create challenge", "err", err)
		h.respond(w, challengedb.OpCreate, Response{Reason: ReasonCreateFailed})
		return
	}

	h.respond(w, challengedb.OpCreate, Response{ChallengeID: id, Result: true})
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "itemId")
	id, err := challengedb.ParseChallengeID(raw)
	if err != nil {
		// challengeId is numeric on the wire, so a raw id that failed to parse
		// is only echoed in the reason.
		h.respond(w, challengedb.OpReplace, Response{Reason: "invalid challenge id: " + raw})
		return
	}

	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, challengedb.OpReplace, Response{ChallengeID: id, Reason: err.Error()})
		return
	}

	if err := h.service.Replace(r.Context(), id, req.Challenge); err != nil {
		slog.Error("replace challenge", "id", id, "err", err)
		h.respond(w, challengedb.OpReplace, Response{ChallengeID: id, Reason: challengedb.Cause(err).Error()})
		return
	}

	h.respond(w, challengedb.OpReplace, Response{ChallengeID: id, Result: true})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := challengedb.ParseChallengeID(chi.URLParam(r, "itemId"))
	if err != nil {
		slog.Debug("delete challenge: skipping storage", "err", err)
		h.respond(w, challengedb.OpDelete, Response{Result: true})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		slog.Error("delete challenge", "id", id, "err", err)
	}

	h.respond(w, challengedb.OpDelete, Response{Result: true})
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	id, err := challengedb.ParseChallengeID(chi.URLParam(r, "itemId"))
	if err != nil {
		h.respond(w, challengedb.OpRead, Response{Reason: ReasonNotFound})
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		// Storage failures are reported to the caller as absence.
		if !errors.Is(err, challengedb.ErrNotFound) {
			slog.Error("read challenge", "id", id, "err", err)
		}
		h.respond(w, challengedb.OpRead, Response{Reason: ReasonNotFound})
		return
	}

	h.respond(w, challengedb.OpRead, Response{Challenge: &c, Result: true})
}

func (h *Handler) respond(w http.ResponseWriter, op challengedb.Operation, resp Response) {
	h.config.Metrics.observeResult(op, resp.Result)
	writeResult(w, resp)
}
