package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"profile-roast/internal/config"
	"profile-roast/internal/render"
)

// DefaultUsername is analyzed when none is given.
const DefaultUsername = "hellokaton"

// ConfigLoader returns the configuration for a command run.
type ConfigLoader func() (*config.Config, error)

// NewRootCmd creates the root command reading configuration from the environment.
func NewRootCmd(version string) *cobra.Command {
	return NewRootCmdWithConfig(version, config.Parse)
}

// NewRootCmdWithConfig creates the root command with an explicit config
// loader for testability.
func NewRootCmdWithConfig(version string, load ConfigLoader) *cobra.Command {
	var (
		username   string
		noCache    bool
		clearCache bool
	)

	cmd := &cobra.Command{
		Use:           "roast",
		Short:         "Roast a social media profile",
		Long:          "Fetches a profile and its recent posts, then asks a language model for a stylized commentary.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			useCache := cfg.EnableCache && !noCache

			a, err := newApp(cfg, useCache)
			if err != nil {
				return err
			}
			defer a.close()

			if clearCache && useCache {
				a.log.Info("clearing cache")
				if err := a.cache.ClearAll(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}

			if username == "" {
				username, err = promptUsername(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			username = strings.TrimPrefix(username, "@")

			a.log.Info("starting analysis", zap.String("username", username), zap.Bool("cache_enabled", useCache))
			result, err := a.analyzer(nil).Run(cmd.Context(), "", username)
			if err != nil {
				return err
			}
			a.log.Info("analysis finished",
				zap.String("username", username),
				zap.Int("tweets", len(result.Profile.Tweets)),
				zap.Bool("degraded", result.Degraded))

			out := cmd.OutOrStdout()
			return render.Analysis(out, result, render.IsTerminal(out))
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "profile to analyze (prompted when omitted)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache for this run")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "clear the response cache before running")

	cmd.AddCommand(newCacheCmd(load))
	cmd.AddCommand(newServeCmd(load))
	cmd.AddCommand(newTokenCmd(load))
	return cmd
}

func promptUsername(in io.Reader, out io.Writer) (string, error) {
	if _, err := fmt.Fprintf(out, "Username to analyze (default %s): ", DefaultUsername); err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			return name, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read username: %w", err)
	}
	return DefaultUsername, nil
}
