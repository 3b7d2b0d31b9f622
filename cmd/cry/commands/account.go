package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/cry/internal/config"
	"github.com/systmms/cry/internal/dispatch"
)

func NewAccountCommand(cfg *config.Config) *cobra.Command {
	var (
		usernameOnly bool
		passwordOnly bool
	)

	cmd := &cobra.Command{
		Use:   "account <id>",
		Short: "Show a vault account",
		Long: `Fetch an account by id and print it.

Examples:
  cry account 42              # id, name, username, password and type
  cry account 42 --username   # only the username
  cry account 42 --password   # only the password, e.g. for piping`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := dispatch.FieldAll
			switch {
			case usernameOnly:
				field = dispatch.FieldUsername
			case passwordOnly:
				field = dispatch.FieldPassword
			}
			return execute(cmd, cfg, dispatch.Account{ID: firstArg(args), Field: field})
		},
	}

	cmd.Flags().BoolVar(&usernameOnly, "username", false, "Print only the username")
	cmd.Flags().BoolVar(&passwordOnly, "password", false, "Print only the password")
	cmd.MarkFlagsMutuallyExclusive("username", "password")

	return cmd
}

func NewFolderCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "folder <id>",
		Short: "Select the vault folder used by secret pull and push",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, cfg, dispatch.Folder{ID: firstArg(args)})
		},
	}
}
