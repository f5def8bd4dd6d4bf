package clientcli

import "github.com/sagarc03/challengedb"

// Result is the server's answer to a challenge operation.
type Result struct {
	ChallengeID int64                  `json:"challengeId,omitempty"`
	Challenge   *challengedb.Challenge `json:"challenge,omitempty"`
	Result      bool                   `json:"result"`
	Reason      string                 `json:"reason,omitempty"`
}

// Err returns ErrOperationFailed wrapped with the reason when the server
// reported a failure, nil otherwise.
func (r Result) Err() error {
	if r.Result {
		return nil
	}
	if r.Reason == "" {
		return ErrOperationFailed
	}
	return &OperationError{Reason: r.Reason}
}

// OperationError carries the reason a server gave for a failed operation.
type OperationError struct {
	Reason string
}

func (e *OperationError) Error() string {
	return ErrOperationFailed.Error() + ": " + e.Reason
}

func (e *OperationError) Unwrap() error {
	return ErrOperationFailed
}

// writePayload is the JSON body for create and replace.
type writePayload struct {
	Challenge challengedb.ChallengeInput `json:"challenge"`
	Digest    string                     `json:"digest"`
}

// digestPayload is the JSON body for delete.
type digestPayload struct {
	Digest string `json:"digest"`
}
