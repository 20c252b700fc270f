package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/tui"
)

var errNoTerminal = errors.New("marquee needs an interactive terminal; use the watchlist and progress subcommands instead")

// isTerminal reports whether both stdin and stdout are attached to a terminal
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "marquee",
		Short:         "Browse trending movies and shows, keep a watchlist, and pick up where you left off",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return errNoTerminal
			}
			return runTUI(ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newWatchlistCommand(ctx))
	rootCmd.AddCommand(newProgressCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runTUI(ctx *commandContext) error {
	return ctx.withEnv(func(env *environment) error {
		env.logger.Info("starting marquee", "version", Version, "backend", env.cfg.Storage.Backend)

		metadata, err := source.NewClient(&env.cfg.Metadata, env.logger)
		if err != nil {
			// Local features still work without the metadata API
			env.logger.Warn("metadata client unavailable", "error", err)
		}

		model := tui.NewModel(env.watchlist, env.progress, metadata, env.logger, tui.Options{
			RailWidth:     env.cfg.UI.RailWidth,
			ToastDuration: time.Duration(env.cfg.UI.ToastSeconds) * time.Second,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			env.logger.Error("TUI error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}

		env.logger.Info("shutting down")
		return nil
	})
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the marquee version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marquee %s\n", Version)
		},
	}
}
