package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sagarc03/challengedb"
)

// Formatter formats results for output.
type Formatter interface {
	FormatResult(w io.Writer, op challengedb.Operation, result Result) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatResult formats the outcome of a challenge operation as text.
// Failures are always printed; successes are silenced by Quiet, except for
// the challenge body of a read.
func (f *HumanFormatter) FormatResult(w io.Writer, op challengedb.Operation, result Result) error {
	if !result.Result {
		reason := result.Reason
		if reason == "" {
			reason = "no reason given"
		}
		_, _ = fmt.Fprintf(w, "Failed: %s - %s\n", strings.ToLower(string(op)), reason)
		return nil
	}

	switch op {
	case challengedb.OpCreate:
		if f.Quiet {
			_, _ = fmt.Fprintln(w, result.ChallengeID)
			return nil
		}
		_, _ = fmt.Fprintf(w, "Created: challenge %d\n", result.ChallengeID)
	case challengedb.OpReplace:
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Replaced: challenge %d\n", result.ChallengeID)
		}
	case challengedb.OpDelete:
		if !f.Quiet {
			_, _ = fmt.Fprintln(w, "Deleted")
		}
	case challengedb.OpRead:
		if result.Challenge == nil {
			return nil
		}
		c := result.Challenge
		_, _ = fmt.Fprintf(w, "ID:          %d\n", c.ID)
		_, _ = fmt.Fprintf(w, "Name:        %s\n", c.Name)
		_, _ = fmt.Fprintf(w, "Description: %s\n", c.Description)
		_, _ = fmt.Fprintf(w, "Date:        %s\n", c.Date)
	}

	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatResult writes the server result unchanged.
func (f *JSONFormatter) FormatResult(w io.Writer, _ challengedb.Operation, result Result) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
