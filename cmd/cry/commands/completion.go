package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/cry/internal/config"
)

// NewCompletionCommand creates the completion command for generating shell completions.
func NewCompletionCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cry.

To load completions:

Bash:
  $ source <(cry completion bash)

Zsh:
  $ cry completion zsh > "${fpath[1]}/_cry"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ cry completion fish | source

PowerShell:
  PS> cry completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Debug("Generating %s completion", args[0])
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
