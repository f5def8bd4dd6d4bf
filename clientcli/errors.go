package clientcli

import (
	"errors"
	"fmt"

	"github.com/sagarc03/challengedb"
)

// Errors for profile lookup.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNoProfiles       = errors.New("no profiles configured")
	ErrNoDefaultProfile = errors.New("several profiles and none is the default")
)

// ErrSecretRequired is returned by New when no shared secret is configured.
var ErrSecretRequired = errors.New("secret is required")

// Errors returned by Client operations.
var (
	// ErrUnauthorized matches challengedb.ErrUnauthorized under errors.Is.
	ErrUnauthorized     = fmt.Errorf("server rejected digest: %w", challengedb.ErrUnauthorized)
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrOperationFailed  = errors.New("operation failed")
)
