package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cry version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cry %s %s/%s\n", info, runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
