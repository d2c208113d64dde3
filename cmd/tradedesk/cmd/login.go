package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/backend"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the trading backend",
	Long: `Exchange credentials for a session token.

The token is persisted locally, so later commands reuse it until logout
or until the backend rejects it.

Example:
  tradedesk login -u jaehyun -p secret`,
	RunE: runLogin,
}

var (
	loginUsername string
	loginPassword string
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (required)")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sess, err := a.sess.Login(ctx, a.api, loginUsername, loginPassword)
	if err != nil {
		var ae *backend.AuthError
		if errors.As(err, &ae) {
			return fmt.Errorf("login rejected: %s", ae.Message)
		}
		return fmt.Errorf("login: %w", err)
	}

	fmt.Printf("Logged in as %s\n", sess.DisplayName)

	// A fresh session invalidates everything derived from the old one:
	// re-derive the account gate and the auto-trade mirror now.
	st, err := a.gate.Refresh(ctx)
	if err != nil {
		fmt.Println("Account status unavailable; account-gated commands will re-check.")
	} else if st.HasConfig {
		fmt.Printf("Brokerage account: %s (%s)\n", st.AccountNoMasked, st.AccountCode)
	} else {
		fmt.Println("No brokerage account registered yet: run `tradedesk account save`.")
	}

	if enabled, err := a.auto.Load(ctx); err == nil {
		fmt.Printf("Automated trading: %s\n", onOff(enabled))
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
