package cli

import (
	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "detention",
		Short: "Interstitial pages for containers that cannot serve traffic",
		Long: `detention renders the page a visitor sees when navi cannot route a request
to a container: stopped, crashed, still building, signing in, unresponsive.
It looks the container up in the management API and picks the matching page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	return rootCmd
}
