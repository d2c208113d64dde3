package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/backend"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new user",
	Long: `Register a new user on the trading backend.

Signup does not log you in; run login afterwards.

Example:
  tradedesk signup -u jaehyun -p secret -n "재현"`,
	RunE: runSignup,
}

var (
	signupUsername string
	signupPassword string
	signupName     string
)

func init() {
	rootCmd.AddCommand(signupCmd)

	signupCmd.Flags().StringVarP(&signupUsername, "username", "u", "", "username (required)")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "password (required)")
	signupCmd.Flags().StringVarP(&signupName, "name", "n", "", "display name (required)")
	signupCmd.MarkFlagRequired("username")
	signupCmd.MarkFlagRequired("password")
	signupCmd.MarkFlagRequired("name")
}

func runSignup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	u, err := a.api.Signup(cmd.Context(), signupUsername, signupPassword, signupName)
	if err != nil {
		var ae *backend.AuthError
		if errors.As(err, &ae) {
			return fmt.Errorf("signup rejected: %s", ae.Message)
		}
		return fmt.Errorf("signup: %w", err)
	}

	fmt.Printf("Registered %s (%s). Log in with `tradedesk login -u %s`.\n", u.Name, u.Username, u.Username)
	return nil
}
