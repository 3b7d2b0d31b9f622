package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/cry/internal/config"
	"github.com/systmms/cry/internal/dispatch"
)

// execute hands c to the dispatcher and prints the success message.
func execute(cmd *cobra.Command, cfg *config.Config, c dispatch.Command) error {
	d, err := cfg.NewDispatcher()
	if err != nil {
		return err
	}
	msg, err := d.Dispatch(cmd.Context(), c)
	if err != nil {
		return err
	}
	if msg != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
	return nil
}

// firstArg returns args[0] or "" so missing arguments reach the dispatcher.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
