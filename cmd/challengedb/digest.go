package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/config"
)

var digestCmd = &cobra.Command{
	Use:   "digest [method...]",
	Short: "Print the expected digest for each method",
	Long: `Print the digest clients must send for each HTTP method, computed
from the configured secret and base path. The digests do not depend on the
item id, so they can be handed to clients as static tokens.

Without arguments all four methods are printed.

Examples:
  challengedb digest
  challengedb digest get put`,
	RunE: runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	secret, err := cfg.Secret()
	if err != nil {
		return fmt.Errorf("resolve secret: %w", err)
	}

	ops, err := operationsFor(args)
	if err != nil {
		return err
	}

	verifier := challengedb.NewDigestVerifier(secret, cfg.Server.BasePath)
	out := cmd.OutOrStdout()
	for _, op := range ops {
		_, _ = fmt.Fprintf(out, "%-7s %-28s %s\n",
			op.HTTPMethod(),
			challengedb.CanonicalString(verifier.BasePath(), op),
			verifier.Expected(op),
		)
	}
	return nil
}

// operationsFor maps method names, in any case, to operations. No names
// selects every operation.
func operationsFor(methods []string) ([]challengedb.Operation, error) {
	if len(methods) == 0 {
		return challengedb.Operations, nil
	}

	ops := make([]challengedb.Operation, 0, len(methods))
	for _, m := range methods {
		op, err := challengedb.OperationFromMethod(strings.ToUpper(m))
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
