package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the local order journal",
	Long: `Query the local audit journal of orders and auto-trade runs
submitted from this console. Requires the sqlite journal type.

Subcommands:
  order  - Get one order by id
  today  - List orders placed today
  day    - List orders placed on a specific day
  runs   - List recent auto-trade decisions

Examples:
  tradedesk journal order 01J0XYZ...
  tradedesk journal today
  tradedesk journal day 2026-08-20
  tradedesk journal runs --limit 50`,
}

var journalOrderCmd = &cobra.Command{
	Use:   "order <order-id>",
	Short: "Get one order by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrder,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List orders placed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List orders placed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent auto-trade decisions",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunsLimit int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalOrderCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalRunsCmd)

	journalRunsCmd.Flags().IntVarP(&journalRunsLimit, "limit", "l", 20, "maximum rows")
}

func openSQLiteJournal(a *app) (*journal.SQLite, error) {
	if a.cfg.Journal.Type != "sqlite" {
		return nil, fmt.Errorf("journal queries need journal.type \"sqlite\", configured type is %q", a.cfg.Journal.Type)
	}
	return journal.NewSQLite(a.cfg.Journal.DBPath)
}

func runJournalOrder(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	j, err := openSQLiteJournal(a)
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetOrder(args[0])
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	fmt.Printf("ID:       %s\n", rec.ID)
	fmt.Printf("Time:     %s\n", rec.Time.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Stock:    %s %s\n", rec.StockCode, rec.StockName)
	fmt.Printf("Side:     %s\n", rec.Side)
	fmt.Printf("Quantity: %d\n", rec.Quantity)
	fmt.Printf("Price:    %.2f\n", rec.OrderPrice)
	fmt.Printf("Amount:   %.2f\n", rec.OrderAmount)
	fmt.Printf("Status:   %s\n", rec.Status)
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return listJournalDay(time.Now().In(loc).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listJournalDay(args[0])
}

func listJournalDay(day string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	j, err := openSQLiteJournal(a)
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListOrdersBetween(start, end)
	if err != nil {
		return fmt.Errorf("query orders: %w", err)
	}
	if len(recs) == 0 {
		fmt.Printf("No orders on %s.\n", day)
		return nil
	}

	fmt.Printf("%-20s %-8s %-5s %6s %12s %-8s %s\n",
		"TIME", "CODE", "SIDE", "QTY", "PRICE", "STATUS", "ID")
	for _, r := range recs {
		fmt.Printf("%-20s %-8s %-5s %6d %12.2f %-8s %s\n",
			r.Time.Local().Format("2006-01-02 15:04:05"),
			r.StockCode, r.Side, r.Quantity, r.OrderPrice, r.Status, r.ID)
	}
	return nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	j, err := openSQLiteJournal(a)
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListRecentAutoRuns(journalRunsLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No auto-trade runs recorded.")
		return nil
	}

	fmt.Printf("%-20s %-16s %-8s %8s %-6s %10s\n",
		"TIME", "STOCK", "CODE", "SCORE", "ACTION", "REWARD")
	for _, r := range recs {
		reward := "-"
		if r.Reward != nil {
			reward = fmt.Sprintf("%.4f", *r.Reward)
		}
		fmt.Printf("%-20s %-16s %-8s %8.4f %-6s %10s\n",
			r.Time.Local().Format("2006-01-02 15:04:05"),
			r.Stock, r.Code, r.ActionScore, r.Action, reward)
	}
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
