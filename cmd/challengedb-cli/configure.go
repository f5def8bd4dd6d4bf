package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb/clientcli"
)

var errCancelled = errors.New("cancelled")

var checkConnection bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Manage server profiles",
	Long: `Manage the servers saved in the profiles file
(default ~/.challengedb/config.yaml). Select one per command with --profile
or CHALLENGEDB_PROFILE; otherwise the default profile is used.`,
}

var configureSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Add or update a profile",
	Long: `Save the endpoint, base path and secret of a server under <name>.

With none of --endpoint, --base-path and --secret given, every field is
prompted for, prefilled from the saved profile. Otherwise the given values
are laid over the saved profile without prompting. The first profile saved
becomes the default.

Examples:
  challengedb-cli configure set local
  challengedb-cli configure set prod -e https://challenges.example.com -k "$SECRET" --check`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigureSet,
}

var configureUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProfiles(func(p *clientcli.Profiles) error {
			if err := p.Use(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default profile is now %q.\n", args[0])
			return nil
		})
	},
}

var configureRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProfiles(func(p *clientcli.Profiles) error {
			if err := p.Remove(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %q.\n", args[0])
			return nil
		})
	},
}

var configureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Long:  `List saved profiles. The default is marked with an asterisk (*).`,
	Args:  cobra.NoArgs,
	RunE:  runConfigureList,
}

func init() {
	configureSetCmd.Flags().BoolVar(&checkConnection, "check", false, "read a challenge with the new settings before saving")

	configureCmd.AddCommand(configureSetCmd, configureUseCmd, configureRemoveCmd, configureListCmd)
}

// editProfiles loads the profiles file, applies fn and writes it back.
func editProfiles(fn func(*clientcli.Profiles) error) error {
	path := configPath()
	profiles, err := clientcli.LoadProfiles(path)
	if err != nil {
		return err
	}
	if err := fn(profiles); err != nil {
		return err
	}
	return profiles.Save(path)
}

func runConfigureSet(cmd *cobra.Command, args []string) error {
	name := args[0]

	return editProfiles(func(p *clientcli.Profiles) error {
		current, _ := p.Lookup(name)
		cfg, err := profileSettings(current, flagConfig())
		if err != nil {
			return err
		}

		if checkConnection {
			if err := testConnection(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("check %s: %w", cfg.Endpoint, err)
			}
		}

		p.Set(name, cfg)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q.\n", name)
		return nil
	})
}

// profileSettings merges the saved settings of a profile with the ones given
// on the command line. With nothing given every field is prompted for,
// prefilled from the saved profile.
func profileSettings(current, given clientcli.Config) (clientcli.Config, error) {
	cfg := clientcli.Config{Endpoint: clientcli.DefaultEndpoint, BasePath: clientcli.DefaultBasePath}.
		Overlay(current).
		Overlay(given)

	if given == (clientcli.Config{}) {
		return promptSettings(cfg)
	}

	if err := validateEndpoint(cfg.Endpoint); err != nil {
		return cfg, err
	}
	if cfg.Secret == "" {
		return cfg, clientcli.ErrSecretRequired
	}
	return cfg, nil
}

func promptSettings(cfg clientcli.Config) (clientcli.Config, error) {
	var err error

	cfg.Endpoint, err = ask(promptui.Prompt{Label: "Endpoint", Default: cfg.Endpoint, Validate: validateEndpoint})
	if err != nil {
		return cfg, err
	}

	cfg.BasePath, err = ask(promptui.Prompt{Label: "Base path", Default: cfg.BasePath})
	if err != nil {
		return cfg, err
	}

	cfg.Secret, err = askSecret(cfg.Secret)
	return cfg, err
}

func askSecret(current string) (string, error) {
	label := "Secret"
	if current != "" {
		label = "Secret (empty keeps the saved one)"
	}

	v, err := ask(promptui.Prompt{
		Label: label,
		Mask:  '*',
		Validate: func(in string) error {
			if in == "" && current == "" {
				return clientcli.ErrSecretRequired
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func ask(p promptui.Prompt) (string, error) {
	v, err := p.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		return "", errCancelled
	}
	return v, err
}

// validateEndpoint accepts absolute http and https URLs.
func validateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: want http(s)://host[:port]", raw)
	}
	return nil
}

// testConnection reads challenge 1. Any signed answer passes, including
// "No such challenge"; a rejected digest or an unreachable server fails.
func testConnection(ctx context.Context, cfg clientcli.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := clientcli.New(cfg)
	if err != nil {
		return err
	}
	_, err = client.Get(ctx, 1)
	return err
}

func runConfigureList(cmd *cobra.Command, _ []string) error {
	profiles, err := clientcli.LoadProfiles(configPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	names := profiles.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(out, "No profiles. Add one with 'challengedb-cli configure set <name>'.")
		return nil
	}

	for _, name := range names {
		marker := " "
		if name == profiles.Default {
			marker = "*"
		}
		cfg := profiles.Servers[name]
		_, _ = fmt.Fprintf(out, "%s %-12s %s%s\n", marker, name, cfg.Endpoint, cfg.BasePath)
	}
	return nil
}
