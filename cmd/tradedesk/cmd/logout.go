package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the local session",
	Long: `Drop the stored session token and account hint.

Logout is purely local and always succeeds; the backend keeps no
session state to revoke.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !a.sess.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	a.sess.Logout()
	fmt.Println("Logged out.")
	return nil
}
