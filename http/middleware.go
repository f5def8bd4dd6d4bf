package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/challengedb"
)

// MaxBodyBytes caps the size of request bodies read for digest extraction.
const MaxBodyBytes = 1 << 20

// RequestVerifier decides whether a digest authorizes an operation.
type RequestVerifier interface {
	Verify(op challengedb.Operation, digest string) bool
}

// AuthMiddleware creates middleware that checks the request digest for op.
//
// READ takes the digest from the "digest" query parameter. The other
// operations take it from the "digest" field of the JSON body; the body is
// buffered and restored for the next handler. A body that cannot be decoded
// counts as an empty digest. A nil verifier rejects every request.
func AuthMiddleware(verifier RequestVerifier, op challengedb.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			digest := extractDigest(w, r, op)

			if verifier == nil || !verifier.Verify(op, digest) {
				slog.Debug("digest rejected", "operation", op, "path", r.URL.Path, "err", challengedb.ErrUnauthorized)
				WriteUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractDigest(w http.ResponseWriter, r *http.Request, op challengedb.Operation) string {
	if op == challengedb.OpRead {
		return r.URL.Query().Get("digest")
	}

	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Digest string `json:"digest"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Digest
}

// RequestLogger logs one line per request with slog.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
