// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Coursemate CLI.
// It exposes the session and recommendation client as Cobra subcommands:
// checking the session, showing the student profile and course
// recommendations, signing in and out, and probing both backend services.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"coursemate/cli/internal/auth"
	"coursemate/cli/internal/backend"
	"coursemate/cli/internal/config"
	"coursemate/cli/internal/keychain"
	"coursemate/cli/internal/logging"
	"coursemate/cli/internal/session"
)

var (
	showVersion bool
	verbose     bool
	configPath  string
	storeFlag   string

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg *config.Config
)

// errSilent makes the process exit with status 1 without printing anything
// more; the command has already told the user what went wrong.
var errSilent = errors.New("")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "coursemate",
	Short:         "Coursemate CLI for student sessions and course recommendations",
	Long:          `Coursemate is a command-line client for the university login service and the course recommendation service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if storeFlag != "" {
			loaded.Store.Backend = storeFlag
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		if verbose {
			loaded.Logging.Level = "debug"
		}
		logging.Init(logging.Config{
			Level:  loaded.Logging.Level,
			Format: loaded.Logging.Format,
		})
		cfg = loaded
		logging.Debug().Str("version", Version).Str("store", cfg.Store.Backend).Msg("configuration loaded")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "coursemate %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application. Ctrl-C cancels the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default $XDG_CONFIG_HOME/coursemate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Session store: keyring or memory")
}

// commandContext bounds a command by http.command_timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.HTTP.CommandTimeout > 0 {
		return context.WithTimeout(ctx, cfg.HTTP.CommandTimeout)
	}
	return context.WithCancel(ctx)
}

// openStore returns the session store selected by store.backend.
func openStore(c *config.Config) (session.Store, error) {
	if c.Store.Backend == "memory" {
		return session.NewMemoryStore(nil), nil
	}
	return keychain.NewManager(keychain.Options{
		FileDir:        c.Store.FileDir,
		FilePassphrase: c.Store.FilePassphrase,
		AllowFile:      c.Store.AllowFile,
	})
}

// newService wires the client from the loaded configuration.
func newService(cmd *cobra.Command) (*auth.Service, error) {
	svc, _, err := wire(cmd)
	return svc, err
}

// wire builds the client and returns its navigator too, for commands that
// draw around navigator output.
func wire(cmd *cobra.Command) (*auth.Service, *terminalNavigator, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	login, rec := backend.New(backend.Endpoints{
		LoginBaseURL:     cfg.Login.BaseURL,
		LoginPath:        cfg.Login.Path,
		RecommendBaseURL: cfg.Recommend.BaseURL,
		RecommendPath:    cfg.Recommend.Path,
	}, backend.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	})
	nav := newNavigator(cmd.ErrOrStderr(), cfg.Navigation.OpenBrowser, cfg.Login.BaseURL)
	svc := auth.NewService(store, nav, login, rec, auth.Options{
		LoginPage:     cfg.Navigation.LoginPage,
		LogoutDelay:   cfg.Navigation.LogoutDelay,
		ProbePassword: cfg.Login.ProbePassword,
	})
	return svc, nav, nil
}
