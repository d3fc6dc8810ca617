package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(load ConfigLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the local response cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadStoreApp(load)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.cache.ClearAll(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Remove expired cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadStoreApp(load)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.cache.ClearExpired(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "expired entries cleared")
			return err
		},
	})

	return cmd
}

// loadStoreApp always opens the persistent cache: maintenance acts on the
// file even when ENABLE_CACHE is off.
func loadStoreApp(load ConfigLoader) (*app, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, true)
}
