package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sagarc03/challengedb"
)

// Response is the JSON body of every handled challenge request.
// Business failures are reported with Result false and a Reason, never with
// an HTTP error status.
type Response struct {
	ChallengeID int64                  `json:"challengeId,omitempty"`
	Challenge   *challengedb.Challenge `json:"challenge,omitempty"`
	Result      bool                   `json:"result"`
	Reason      string                 `json:"reason,omitempty"`
}

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// WriteUnauthorized writes a 401 with an empty body.
func WriteUnauthorized(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
}

func writeResult(w http.ResponseWriter, resp Response) {
	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "Route not found")
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}
