package cli

import (
	"github.com/spf13/cobra"

	"github.com/justsurfingit/internship-finder/internal/auth"
)

func NewGmailAuthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gmail-auth",
		Short: "Authorize Gmail sending and cache the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			return auth.AuthorizeGmail(cmd.Context(), cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
