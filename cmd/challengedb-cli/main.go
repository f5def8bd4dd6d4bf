package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb/clientcli"
)

var (
	version = "dev"

	cfgFile    string
	profile    string
	endpoint   string
	basePath   string
	secret     string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "challengedb-cli",
	Version: version,
	Short:   "Client for the challengedb server",
	Long: `challengedb-cli - Client for the challengedb server

Every request is signed with the shared secret. Connection settings come from
a profile in ~/.challengedb/config.yaml, environment variables, or flags,
with flags taking precedence.

  - create:    store a new challenge
  - replace:   overwrite a challenge by id
  - delete:    remove a challenge by id
  - get:       fetch a challenge by id
  - configure: manage server profiles`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.challengedb/config.yaml, env: CHALLENGEDB_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (default: the default profile, env: CHALLENGEDB_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "server URL (default: http://localhost:9000, env: CHALLENGEDB_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "mount path of the challenge routes (default: /api/challenge, env: CHALLENGEDB_BASE_PATH)")
	rootCmd.PersistentFlags().StringVarP(&secret, "secret", "k", "", "shared secret (env: CHALLENGEDB_SECRET)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		code := 1
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			code = exitErr.code
		} else {
			_ = getFormatter().FormatError(os.Stderr, err)
		}
		os.Exit(code)
	}
}

// configPath returns the profiles file from the flag, env, or default.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := os.Getenv(clientcli.EnvConfig); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// flagConfig holds the connection settings given on the command line.
func flagConfig() clientcli.Config {
	return clientcli.Config{Endpoint: endpoint, BasePath: basePath, Secret: secret}
}

// buildConfig lays env vars and then flags over the selected profile.
// Without any profiles, env and flags alone are used.
func buildConfig() (clientcli.Config, error) {
	profiles, err := clientcli.LoadProfiles(configPath())
	if err != nil {
		return clientcli.Config{}, err
	}

	name := profile
	if name == "" {
		name = os.Getenv(clientcli.EnvProfile)
	}

	base, err := profiles.Lookup(name)
	if err != nil && (name != "" || !errors.Is(err, clientcli.ErrNoProfiles)) {
		return clientcli.Config{}, err
	}

	return base.Overlay(clientcli.ConfigFromEnv()).Overlay(flagConfig()), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}

// exitError is returned when we want to exit with a specific code
// but don't want an error message printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}
