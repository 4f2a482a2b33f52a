package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libractl/internal/api"
	"github.com/blackwell-systems/libractl/internal/config"
	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/session"
	"github.com/blackwell-systems/libractl/internal/tui"
	"github.com/blackwell-systems/libractl/internal/util"
)

var (
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	logger = zerolog.Nop()

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagAPIBase       string
	flagDebug         bool
)

var rootCmd = &cobra.Command{
	Use:   "libractl",
	Short: "Browse, borrow and administer a library from the terminal",
	Long: `libractl is a client for a library-management gateway.

Members browse the catalog, borrow a copy for up to a week and return it.
Administrators manage books, users and every loan.

Run 'libractl' with no arguments to launch the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Controllers already told the user what went wrong.
		var f *controller.Failure
		if !errors.As(err, &f) && !errors.Is(err, controller.ErrDeclined) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	pf.StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/libractl/config.yml)")
	pf.StringVar(&flagAPIBase, "api-base", "", "Gateway base URL, overriding the config")
	pf.BoolVar(&flagDebug, "debug", false, "Log requests and failures to stderr")

	// Assigned here rather than in the literal: runUnifiedTUI reads
	// rootCmd, which would otherwise be an initialization cycle.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runUnifiedTUI()
		}
		return cmd.Help()
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)
		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd == rootCmd && tui.ShouldUseTUI(cmd))
	}

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newBooksCmd(),
		newBorrowCmd(),
		newLoansCmd(),
		newReturnCmd(),
		newBorrowingsCmd(),
		newUsersCmd(),
		newTransactionsCmd(),
		newStatsCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)
}

// setup loads config and session and builds the gateway client. In TUI
// mode logs go to the log file instead of stderr.
func setup(interactive bool) error {
	if flagConfig != "" {
		if err := os.Setenv("LIBRACTL_CONFIG", flagConfig); err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagAPIBase != "" {
		cfg.API.BaseURL = flagAPIBase
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}

	logger, err = newLogger(cfg.Log, interactive)
	if err != nil {
		return err
	}

	store = session.NewStore(cfg.Session.Path)
	if _, err := store.Load(); err != nil {
		warn("Ignoring unreadable session: %v", err)
	}

	client = api.New(cfg.API.BaseURL,
		func() string { return store.Current().BearerToken() },
		api.WithTimeout(cfg.API.EffectiveTimeout()),
		api.WithLogger(logger),
	)
	logger.Debug().Str("base_url", cfg.API.BaseURL).Str("session", store.Path()).Msg("client ready")
	return nil
}

// newDeps wires controllers for a one-shot command.
func newDeps(assumeYes bool) *controller.Deps {
	return &controller.Deps{
		Notify:  consoleNotifier{},
		Confirm: newStdinConfirmer(assumeYes),
		Session: store.Current(),
		Log:     logger,
		Now:     time.Now,
		PerPage: cfg.API.EffectivePerPage(),
	}
}

// requireLogin fails unless a session token is present.
func requireLogin() error {
	if !store.Current().Authenticated() {
		return fmt.Errorf("not logged in; run 'libractl login'")
	}
	return nil
}

// requireAdmin fails unless the session belongs to an administrator.
func requireAdmin() error {
	if err := requireLogin(); err != nil {
		return err
	}
	if !store.Current().IsAdmin() {
		return fmt.Errorf("this command needs an administrator account")
	}
	return nil
}
