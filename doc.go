// Package challengedb provides a small challenge record service guarded by a
// shared-secret HMAC digest scheme.
//
// Challengedb implements create, replace, delete and read operations on a single
// "challenge" resource (name, description, date) with pluggable relational
// backends.
//
// # Key Components
//
//   - ChallengeService: Validates input and delegates to the repository
//   - ChallengeRepo: Interface for challenge persistence (PostgreSQL, SQLite)
//   - DigestVerifier: HMAC-SHA256 digest verification per operation
//
// # Authentication
//
// Every request carries a lowercase hex digest equal to
//
//	hex(HMAC-SHA256(secret, basePath + "/;" + METHOD))
//
// where METHOD is POST, PUT, DELETE or GET. The item identifier and the payload
// are not part of the signed string, so the digest for a method never changes
// for a given secret and base path. It behaves like a static bearer token per
// method and offers no replay protection. The scheme is kept as is so existing
// clients stay compatible.
//
// # Example Usage
//
//	verifier := challengedb.NewDigestVerifier(secret, "/api/challenge")
//	if !verifier.Verify(challengedb.OpCreate, digest) {
//	    // unauthorized
//	}
//
//	service := challengedb.NewChallengeService(repo)
//	id, err := service.Create(ctx, challengedb.ChallengeInput{
//	    Name: "A",
//	    Date: "2024-01-01",
//	})
//
// See the http package for the REST API and the database package for backend
// implementations.
package challengedb
