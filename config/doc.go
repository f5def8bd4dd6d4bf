// Package config provides configuration loading and validation for challengedb.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (CHALLENGEDB_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with the CHALLENGEDB_ prefix:
//   - server.port → CHALLENGEDB_SERVER_PORT
//   - database.dsn → CHALLENGEDB_DATABASE_DSN
//   - auth.secret → CHALLENGEDB_AUTH_SECRET
//
// # Shared Secret
//
// auth.secret holds the secret inline and defaults to "challenge-database-api"
// for compatibility with existing clients. auth.secret_file points at a file
// holding the secret and takes precedence. Use Config.Secret to resolve it.
package config
