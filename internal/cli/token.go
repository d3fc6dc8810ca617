package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"profile-roast/internal/auth"
)

func newTokenCmd(load ConfigLoader) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token for the serve command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			token, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience).GenerateToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "identity embedded in the token")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
