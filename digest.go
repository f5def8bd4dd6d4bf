package challengedb

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CanonicalSeparator sits between the base path and the method token in the
// signed string.
const CanonicalSeparator = "/;"

// DigestVerifier checks request digests against a shared secret.
//
// The expected digest depends only on the secret, the base path and the
// operation, so it is computed once per operation at construction time.
type DigestVerifier struct {
	basePath string
	expected map[Operation]string
}

// NewDigestVerifier creates a verifier for a service mounted at basePath.
//
// Parameters:
//   - secret: shared secret used as the HMAC key
//   - basePath: path the challenge resource is mounted at (e.g., "/api/challenge")
func NewDigestVerifier(secret, basePath string) *DigestVerifier {
	basePath = NormalizeBasePath(basePath)

	expected := make(map[Operation]string, len(Operations))
	for _, op := range Operations {
		expected[op] = ComputeDigest(secret, CanonicalString(basePath, op))
	}

	return &DigestVerifier{
		basePath: basePath,
		expected: expected,
	}
}

// Verify reports whether supplied matches the expected digest for op.
//
// The item identifier and the request payload are not signed. Any request that
// presents the per-operation digest is accepted. An empty or unknown digest,
// or an unknown operation, is rejected.
//
// Example:
//
//	verifier := challengedb.NewDigestVerifier("s", "/api/challenge")
//	ok := verifier.Verify(challengedb.OpRead, r.URL.Query().Get("digest"))
func (v *DigestVerifier) Verify(op Operation, supplied string) bool {
	expected, ok := v.expected[op]
	if !ok || supplied == "" {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(supplied))
}

// Expected returns the digest a client must send for op.
func (v *DigestVerifier) Expected(op Operation) string {
	return v.expected[op]
}

// BasePath returns the normalized base path the verifier signs for.
func (v *DigestVerifier) BasePath() string {
	return v.basePath
}

// CanonicalString builds the signed string for an operation: the base path,
// the literal "/;" separator and the HTTP method, e.g. "/api/challenge/;POST".
func CanonicalString(basePath string, op Operation) string {
	return NormalizeBasePath(basePath) + CanonicalSeparator + op.HTTPMethod()
}

// ComputeDigest returns the lowercase hex HMAC-SHA256 of message keyed by secret.
func ComputeDigest(secret, message string) string {
	return hex.EncodeToString(hmacSHA256([]byte(secret), []byte(message)))
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
