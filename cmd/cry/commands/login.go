package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/cry/internal/config"
	"github.com/systmms/cry/internal/dispatch"
)

func NewLoginCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <credentials>@<url>",
		Short: "Log in to a Cryptopus instance",
		Long: `Store the vault credentials and URL for later commands.

The credentials are the token shown on the Cryptopus profile page. Both the
base64 export and a plain "username:token" pair are accepted.

Examples:
  cry login MTIzOmFiYw==@https://cryptopus.example.com
  cry login api-user:token@https://cryptopus.example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, cfg, dispatch.Login{Arg: firstArg(args)})
		},
	}

	return cmd
}

func NewLogoutCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, cfg, dispatch.Logout{})
		},
	}
}
