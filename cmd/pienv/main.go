package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tsukumogami/pienv/internal/config"
	"github.com/tsukumogami/pienv/internal/installer"
	"github.com/tsukumogami/pienv/internal/log"
	"github.com/tsukumogami/pienv/internal/ops"
)

var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool
	uvBinary    string
)

// globalCtx is the application-level context that is canceled on SIGINT/SIGTERM.
// Commands should use this context for cancellable operations.
var globalCtx context.Context
var globalCancel context.CancelFunc

// deps is the shared operation dependency bundle, built by setup (the root
// command's PersistentPreRunE) after config is resolved.
var deps *ops.Deps

var rootCmd = &cobra.Command{
	Use:   "pienv",
	Short: "A lifecycle manager for isolated Python tool virtual environments",
	Long: `pienv installs command-line Python tools into isolated virtual
environments and exposes their launchers on your PATH, the way pipx
and uv tool do, while keeping durable metadata about what's installed.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Show errors only")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show verbose output (INFO level)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show debug output (includes timestamps and source locations)")
	rootCmd.PersistentFlags().StringVar(&uvBinary, "uv-binary", "", "Path to the uv binary (overrides PATH/sibling lookup)")

	rootCmd.PersistentPreRunE = setup

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(reinstallCmd)
	rootCmd.AddCommand(injectCmd)
	rootCmd.AddCommand(uninjectCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	globalCtx, globalCancel = context.WithCancel(context.Background())
	defer globalCancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived %s, canceling operation...\n", sig)
		globalCancel()

		<-sigChan
		fmt.Fprintln(os.Stderr, "Forced exit")
		exitWithCode(ExitCancelled)
	}()

	if err := rootCmd.ExecuteContext(globalCtx); err != nil {
		if globalCtx.Err() == context.Canceled {
			exitWithCode(ExitCancelled)
		}
		printError(err)
		exitWithCode(ExitGeneral)
	}
}

// setup initializes the logger and the shared operation dependencies
// before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	initLogger()

	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare pienv home: %w", err)
	}

	override := uvBinary
	if override == "" {
		override = config.GetUVBinary()
	}
	drv, err := installer.New(override)
	if err != nil {
		return err
	}

	deps = &ops.Deps{
		Config:    cfg,
		Installer: drv,
		Log:       log.Default(),
	}
	return nil
}

// initLogger initializes the global logger based on flags and environment variables.
// Flags take precedence over environment variables.
func initLogger() {
	level := determineLogLevel()
	handler := log.NewCLIHandler(level)
	logger := log.New(handler)
	log.SetDefault(logger)

	if level == slog.LevelDebug {
		fmt.Fprintln(os.Stderr, "[DEBUG MODE] Output may contain file paths. Do not share publicly.")
	}
}

// determineLogLevel returns the appropriate slog.Level based on flags and environment variables.
// Priority: flags > environment variables > default (WARN)
func determineLogLevel() slog.Level {
	if debugFlag {
		return slog.LevelDebug
	}
	if verboseFlag {
		return slog.LevelInfo
	}
	if quietFlag {
		return slog.LevelError
	}

	if isTruthy(os.Getenv("PIENV_DEBUG")) {
		return slog.LevelDebug
	}
	if isTruthy(os.Getenv("PIENV_VERBOSE")) {
		return slog.LevelInfo
	}
	if isTruthy(os.Getenv("PIENV_QUIET")) {
		return slog.LevelError
	}

	return slog.LevelWarn
}

func isTruthy(s string) bool {
	s = strings.ToLower(s)
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
