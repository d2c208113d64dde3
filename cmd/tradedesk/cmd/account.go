package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/guard"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the brokerage-account configuration",
	Long: `Inspect or register the brokerage account the backend trades through.

Subcommands:
  show  - Show the current account status
  save  - Register or replace the account configuration

Examples:
  tradedesk account show
  tradedesk account save --number 12345678-01 --code 01 --app-key KEY --app-secret SECRET`,
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current account status",
	Args:  cobra.NoArgs,
	RunE:  runAccountShow,
}

var accountSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Register or replace the account configuration",
	Args:  cobra.NoArgs,
	RunE:  runAccountSave,
}

var (
	accountNo     string
	accountCode   string
	accountKey    string
	accountSecret string
	accountReal   bool
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountSaveCmd)

	accountSaveCmd.Flags().StringVar(&accountNo, "number", "", "brokerage account number (required)")
	accountSaveCmd.Flags().StringVar(&accountCode, "code", "", "account product code (required)")
	accountSaveCmd.Flags().StringVar(&accountKey, "app-key", "", "provider API key (required)")
	accountSaveCmd.Flags().StringVar(&accountSecret, "app-secret", "", "provider API secret (required)")
	accountSaveCmd.Flags().BoolVar(&accountReal, "real", false, "trade against the real market instead of the sandbox")
	accountSaveCmd.MarkFlagRequired("number")
	accountSaveCmd.MarkFlagRequired("code")
	accountSaveCmd.MarkFlagRequired("app-key")
	accountSaveCmd.MarkFlagRequired("app-secret")
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/account", guard.Requirements{Login: true}); err != nil {
		return err
	}

	st, err := a.gate.Refresh(ctx)
	if err != nil {
		return err
	}

	if !st.HasConfig {
		fmt.Println("No brokerage account registered: run `tradedesk account save`.")
		return nil
	}

	fmt.Printf("Account:  %s\n", st.AccountNoMasked)
	fmt.Printf("Code:     %s\n", st.AccountCode)
	fmt.Printf("Mode:     %s\n", tradeMode(st.RealMode))
	return nil
}

func runAccountSave(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/account", guard.Requirements{Login: true}); err != nil {
		return err
	}

	st, err := a.gate.Save(ctx, backend.AccountConfig{
		AccountNo:   accountNo,
		AccountCode: accountCode,
		AppKey:      accountKey,
		AppSecret:   accountSecret,
		RealMode:    accountReal,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account registered: %s (%s), mode %s\n",
		st.AccountNoMasked, st.AccountCode, tradeMode(st.RealMode))
	return nil
}

func tradeMode(real bool) string {
	if real {
		return "REAL"
	}
	return "SANDBOX"
}
