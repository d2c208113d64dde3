package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/guard"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the identity behind the current session",
	Args:  cobra.NoArgs,
	RunE:  runMe,
}

func init() {
	rootCmd.AddCommand(meCmd)
}

func runMe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/me", guard.Requirements{Login: true}); err != nil {
		return err
	}

	u, err := a.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("fetch identity: %w", err)
	}

	fmt.Printf("Username: %s\n", u.Username)
	fmt.Printf("Name:     %s\n", u.Name)
	if a.sess.AccountHint() {
		fmt.Println("Account:  registered (hint; verified on use)")
	} else {
		fmt.Println("Account:  not registered")
	}
	return nil
}
