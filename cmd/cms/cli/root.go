package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo is stamped at build time.
type VersionInfo struct {
	Version string
	Commit  string
}

var configPath string

func NewRootCommand(info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cms",
		Short:         "Media CMS backend",
		Long:          "Stores categorized image uploads and video links, and serves them over HTTP.",
		SilenceErrors: true,
		SilenceUsage:  true,
		// Running without a subcommand starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "configPath", "", "Path to configuration file (default internal/cms/config/$ENV.yaml)")

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
			return err
		},
	}
}
