package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/guard"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Manage per-stock risk limits",
	Long: `List or update the risk limits the backend enforces on orders.

The rule for stock code ALL applies to every stock without its own rule.
Updates are partial: only the flags you pass change.

Examples:
  tradedesk risk list
  tradedesk risk set 005930 --max-shares 100
  tradedesk risk set ALL --max-weight 25 --active=false`,
}

var riskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored risk rules",
	Args:  cobra.NoArgs,
	RunE:  runRiskList,
}

var riskSetCmd = &cobra.Command{
	Use:   "set <stock-code>",
	Short: "Update the rule for a stock (ALL for the global rule)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRiskSet,
}

var (
	riskMaxShares   int
	riskMaxWeight   float64
	riskMaxDailyBuy float64
	riskActive      bool
)

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.AddCommand(riskListCmd)
	riskCmd.AddCommand(riskSetCmd)

	riskSetCmd.Flags().IntVar(&riskMaxShares, "max-shares", 0, "maximum position size in shares")
	riskSetCmd.Flags().Float64Var(&riskMaxWeight, "max-weight", 0, "maximum portfolio weight in percent")
	riskSetCmd.Flags().Float64Var(&riskMaxDailyBuy, "max-daily-buy", 0, "maximum buy amount per day")
	riskSetCmd.Flags().BoolVar(&riskActive, "active", true, "whether the rule is enforced")
}

func runRiskList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/settings", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	rules, err := a.views.LoadRiskRules(ctx)
	if err != nil {
		return fmt.Errorf("fetch risk rules: %w", err)
	}
	if len(rules) == 0 {
		fmt.Println("No risk rules stored; backend defaults apply.")
		return nil
	}

	printRiskRules(rules)
	return nil
}

func runRiskSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/settings", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	// Only flags the user passed go into the update; everything else keeps
	// its stored value.
	var upd backend.RiskRuleUpdate
	flags := cmd.Flags()
	if flags.Changed("max-shares") {
		upd.MaxPositionShares = &riskMaxShares
	}
	if flags.Changed("max-weight") {
		upd.MaxWeightPct = &riskMaxWeight
	}
	if flags.Changed("max-daily-buy") {
		upd.MaxDailyBuyAmount = &riskMaxDailyBuy
	}
	if flags.Changed("active") {
		upd.Active = &riskActive
	}
	if upd == (backend.RiskRuleUpdate{}) {
		return fmt.Errorf("nothing to change: pass at least one of --max-shares, --max-weight, --max-daily-buy, --active")
	}

	rule, err := a.api.SaveRiskRule(ctx, args[0], upd)
	if err != nil {
		return fmt.Errorf("save risk rule: %w", err)
	}

	fmt.Printf("Saved rule for %s.\n\n", rule.StockCode)

	// The list read model is stale after a save; reload and show it.
	rules, err := a.views.LoadRiskRules(ctx)
	if err != nil {
		return nil
	}
	printRiskRules(rules)
	return nil
}

func printRiskRules(rules []backend.RiskRule) {
	fmt.Printf("%-8s %12s %12s %16s %-8s %-20s\n",
		"CODE", "MAX SHARES", "MAX WT %", "MAX DAILY BUY", "ACTIVE", "UPDATED")
	for _, r := range rules {
		fmt.Printf("%-8s %12s %12s %16s %-8v %-20s\n",
			r.StockCode,
			fmtIntPtr(r.MaxPositionShares),
			fmtFloatPtr(r.MaxWeightPct),
			fmtFloatPtr(r.MaxDailyBuyAmount),
			r.Active,
			r.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
