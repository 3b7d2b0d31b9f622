package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/cry/internal/config"
	"github.com/systmms/cry/internal/dispatch"
)

// platformTool describes one command family: "ose" for oc, "k8s" for kubectl.
type platformTool struct {
	prefix string
	tool   string
	label  string
}

var (
	openShift  = platformTool{prefix: "ose", tool: "oc", label: "OpenShift"}
	kubernetes = platformTool{prefix: "k8s", tool: "kubectl", label: "Kubernetes"}
)

// NewSecretCommands returns the pull, push and show commands for every
// supported platform.
func NewSecretCommands(cfg *config.Config) []*cobra.Command {
	var cmds []*cobra.Command
	for _, p := range []platformTool{openShift, kubernetes} {
		cmds = append(cmds,
			newSecretPullCommand(cfg, p),
			newSecretPushCommand(cfg, p),
			newSecretShowCommand(cfg, p),
		)
	}
	return cmds
}

func newSecretPullCommand(cfg *config.Config, p platformTool) *cobra.Command {
	return &cobra.Command{
		Use:   p.prefix + "-secret-pull [name]",
		Short: fmt.Sprintf("Copy secrets of the selected folder into the current %s project", p.label),
		Long: fmt.Sprintf(`Copy secrets of the selected vault folder into the current %[1]s project.

Without a name every secret of the folder is applied. Select the folder first
with 'cry folder <id>' and log in with '%[2]s'.

Examples:
  cry %[3]s-secret-pull            # all secrets of the folder
  cry %[3]s-secret-pull database   # only the secret named database`, p.label, p.tool+" login", p.prefix),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, cfg, dispatch.SecretPull{Tool: p.tool, Names: args})
		},
	}
}

func newSecretPushCommand(cfg *config.Config, p platformTool) *cobra.Command {
	return &cobra.Command{
		Use:   p.prefix + "-secret-push <name>",
		Short: fmt.Sprintf("Apply a vault account as a secret in the current %s project", p.label),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, cfg, dispatch.SecretPush{Tool: p.tool, Names: args})
		},
	}
}

func newSecretShowCommand(cfg *config.Config, p platformTool) *cobra.Command {
	return &cobra.Command{
		Use:   p.prefix + "-secret-show <name>",
		Short: fmt.Sprintf("Print a secret of the current %s project", p.label),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, cfg, dispatch.SecretShow{Tool: p.tool, Names: args})
		},
	}
}
