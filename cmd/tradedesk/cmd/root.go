package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/account"
	"github.com/rustyeddy/tradedesk/autotrade"
	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/config"
	"github.com/rustyeddy/tradedesk/gateway"
	"github.com/rustyeddy/tradedesk/guard"
	"github.com/rustyeddy/tradedesk/journal"
	"github.com/rustyeddy/tradedesk/readmodel"
	"github.com/rustyeddy/tradedesk/session"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tradedesk",
	Short: "A terminal console for a remote automated-trading backend",
	Long: `Tradedesk is a terminal trading console.

It talks to a remote trading backend to:
  - Register and inspect your brokerage-account configuration
  - View balance, candle charts and indicators
  - Place manual market orders and browse order history
  - Manage per-stock risk limits
  - Toggle and trigger the server-side automated trading routine

Privileged commands are gated locally: they require a login, and most also
require a registered brokerage account, before anything reaches the network.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tradedesk.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// app bundles the wired components the commands work against.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	sess  *session.Store
	api   *backend.Client
	gate  *account.Gate
	auto  *autotrade.Control
	views *readmodel.Refresher
}

func newApp() (*app, error) {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	kv, err := session.OpenFile(cfg.Session.Path)
	if err != nil {
		return nil, err
	}
	sess := session.Open(kv)

	timeout, err := cfg.Backend.ParseTimeout()
	if err != nil {
		return nil, err
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	gw := &gateway.Client{
		BaseURL: cfg.Backend.BaseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  sess,
		Log:     logger,
	}
	api := backend.New(gw, cfg.Backend.APIKey, logger)

	return &app{
		cfg:   cfg,
		log:   logger,
		sess:  sess,
		api:   api,
		gate:  account.New(api, sess),
		auto:  autotrade.New(api, logger),
		views: readmodel.New(api, sess.Epoch),
	}, nil
}

func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// requireAccess runs the navigation guard for dest before a command touches
// the backend. The login check runs first and is purely local; the account
// check re-derives the gate state from the backend (the persisted hint is
// display-only and never trusted for access decisions).
func (a *app) requireAccess(ctx context.Context, dest string, req guard.Requirements) error {
	loggedIn := a.sess.IsAuthenticated()
	hasAccount := false

	if loggedIn && req.Account {
		st, err := a.gate.Refresh(ctx)
		if err != nil {
			// Fail-closed: an unverifiable account is no account. A stale
			// session was already cleared by the gate.
			a.log.Debug().Err(err).Msg("account gate refresh failed")
		}
		hasAccount = st.HasConfig
		loggedIn = a.sess.IsAuthenticated()
	}

	d := guard.Authorize(dest, req, guard.StateOf(loggedIn, hasAccount))
	switch d.Action {
	case guard.RedirectLogin:
		return fmt.Errorf("%s: run `tradedesk login` first", d.Notice)
	case guard.RedirectAccountSetup:
		return fmt.Errorf("%s: run `tradedesk account save` first", d.Notice)
	}
	return nil
}

// openJournal returns the configured local audit journal, or nil when
// journaling is off.
func (a *app) openJournal() (journal.Journal, error) {
	switch a.cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(a.cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(a.cfg.Journal.OrdersFile, a.cfg.Journal.RunsFile)
	}
	return nil, nil
}
