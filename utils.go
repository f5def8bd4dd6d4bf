package challengedb

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChallengeID parses an item identifier taken from a request path.
// Identifiers are positive integers assigned by storage.
func ParseChallengeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid challenge id: %s: %w", raw, ErrInvalidInput)
	}
	return id, nil
}

// NormalizeBasePath trims trailing slashes from a mount path and ensures it
// starts with a single slash. The root mount normalizes to "".
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
