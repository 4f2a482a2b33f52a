package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/blackwell-systems/libractl/internal/controller"
	"github.com/blackwell-systems/libractl/internal/tui"
	"github.com/blackwell-systems/libractl/internal/unified"
)

// runUnifiedTUI launches the unified TUI for the signed-in account.
func runUnifiedTUI() error {
	sess := store.Current()
	if !sess.Authenticated() {
		fmt.Println(color.YellowString("⚠ Welcome to libractl!"))
		fmt.Println()
		fmt.Printf("  %s Not logged in to %s\n", color.RedString("✗"), cfg.API.BaseURL)
		fmt.Println()
		fmt.Println("Next step: sign in")
		fmt.Printf("  %s\n\n", color.CyanString("libractl login --email you@example.org"))
		fmt.Println("Then run 'libractl' again.")
		return nil
	}

	bridge := &unified.Bridge{}
	deps := &controller.Deps{
		Notify:  bridge,
		Confirm: controller.AlwaysConfirm{},
		Session: sess,
		Log:     logger,
		Now:     time.Now,
		PerPage: cfg.API.EffectivePerPage(),
	}
	ctl := unified.Controllers{
		Dashboard:  controller.NewDashboardController(client, deps),
		Admin:      controller.NewAdminController(client, deps),
		Borrowings: controller.NewBorrowingsController(client, deps),
	}

	ctx := rootCmd.Context()
	m := unified.New(ctl, unified.Options{
		Context: ctx,
		Hub: tui.HubContext{
			UserName: sess.User.Name,
			Email:    sess.User.Email,
			Admin:    sess.IsAdmin(),
			BaseURL:  client.BaseURL(),
		},
		Now:        time.Now,
		ToastTTL:   cfg.UI.ToastDuration(),
		PageWindow: cfg.UI.PageWindow,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p)
	logger.Info().Bool("admin", sess.IsAdmin()).Msg("starting interactive session")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running interactive mode: %w", err)
	}
	return nil
}
