package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/systmms/cry/cmd/cry/commands"
	"github.com/systmms/cry/internal/config"
	dserrors "github.com/systmms/cry/internal/errors"
	"github.com/systmms/cry/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	memguard.CatchInterrupt()
	code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	memguard.Purge()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := &config.Config{}
	root := newRootCommand(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, dserrors.Render(err))
		return dserrors.ExitCode(err)
	}
	return 0
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	info := commands.BuildInfo{Version: version, Commit: commit, Date: date}

	rootCmd := &cobra.Command{
		Use:   "cry",
		Short: "Cryptopus command line client",
		Long: `cry reads accounts from a Cryptopus vault and syncs secrets between a
vault folder and an OpenShift or Kubernetes project.`,
		Version:       info.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Logger == nil {
				cfg.Logger = logging.New(debug, noColor)
			}
			if cfg.Path == "" {
				cfg.Path = configFile
			}
			return cfg.Load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default ~/.ccli/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewLoginCommand(cfg),
		commands.NewLogoutCommand(cfg),
		commands.NewAccountCommand(cfg),
		commands.NewFolderCommand(cfg),
		commands.NewVersionCommand(info),
		commands.NewCompletionCommand(cfg),
	)
	rootCmd.AddCommand(commands.NewSecretCommands(cfg)...)

	return rootCmd
}
