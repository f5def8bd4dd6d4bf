// Package clientcli provides a client library for challengedb servers.
//
// The client signs every request with the shared secret: it computes the
// per-method digest for the configured base path and sends it in the JSON
// body (create, replace, delete) or the "digest" query parameter (get).
//
// # Basic Usage
//
//	cfg := clientcli.Config{
//		Endpoint: "http://localhost:9000",
//		BasePath: "/api/challenge",
//		Secret:   "challenge-database-api",
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Create(ctx, challengedb.ChallengeInput{
//		Name: "Rowing",
//		Date: "2024-05-01",
//	})
//
// A transport failure or a rejected digest is returned as an error. A
// request the server handled but could not satisfy comes back as a Result
// with Result false; Result.Err turns that into an error.
//
// # Profile Configuration
//
// Profiles in ~/.challengedb/config.yaml hold endpoint, base path and secret
// for several servers. Environment settings can be laid over a profile:
//
//	profiles, err := clientcli.LoadProfiles(clientcli.DefaultConfigPath())
//	cfg, err := profiles.Lookup("production")
//	client, err := clientcli.New(cfg.Overlay(clientcli.ConfigFromEnv()))
//
// # Output Formatting
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatResult(os.Stdout, challengedb.OpCreate, res)
package clientcli
