package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/clientcli"
)

var (
	inName        string
	inDescription string
	inDate        string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a challenge",
	Long: `Create a new challenge and print its id.

Examples:
  challengedb-cli create --name Rowing --date 2024-05-01
  challengedb-cli create -q --name Rowing --description "5k" --date 2024-05-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		res, err := client.Create(cmd.Context(), challengeInput())
		return report(challengedb.OpCreate, res, err)
	},
}

var replaceCmd = &cobra.Command{
	Use:   "replace <id>",
	Short: "Replace a challenge",
	Long: `Overwrite the name, description and date of a challenge.

Examples:
  challengedb-cli replace 3 --name Cycling --date 2024-06-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		res, err := client.Replace(cmd.Context(), id, challengeInput())
		return report(challengedb.OpReplace, res, err)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a challenge",
	Long: `Delete a challenge by id. Deleting an id that does not exist
still succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		res, err := client.Delete(cmd.Context(), id)
		return report(challengedb.OpDelete, res, err)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := getClient()
		if err != nil {
			return err
		}
		res, err := client.Get(cmd.Context(), id)
		return report(challengedb.OpRead, res, err)
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, replaceCmd} {
		c.Flags().StringVar(&inName, "name", "", "challenge name")
		c.Flags().StringVar(&inDescription, "description", "", "challenge description")
		c.Flags().StringVar(&inDate, "date", "", "challenge date (YYYY-MM-DD)")
		_ = c.MarkFlagRequired("date")
	}
}

func challengeInput() challengedb.ChallengeInput {
	return challengedb.ChallengeInput{
		Name:        inName,
		Description: inDescription,
		Date:        inDate,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid challenge id: %s", raw)
	}
	return id, nil
}

// report prints the result and turns a server-side failure into a non-zero
// exit without a second error line.
func report(op challengedb.Operation, res clientcli.Result, err error) error {
	if err != nil {
		return err
	}

	if fmtErr := getFormatter().FormatResult(os.Stdout, op, res); fmtErr != nil {
		return fmtErr
	}

	if !res.Result {
		return &exitError{code: 1}
	}
	return nil
}
