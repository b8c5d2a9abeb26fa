package commands

import (
	"github.com/spf13/cobra"
)

// ServeCommand creates the command that runs the page server
func ServeCommand(rt Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the detention server",
		Long: `Start the HTTP server that renders interstitial pages for instances navi
cannot route to. The server logs in to the management API once at startup and
serves until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			port, _ := cmd.Flags().GetInt("port")

			return rt.Serve(cmd.Context(), ServeOptions{
				ConfigPath: configPath,
				Port:       port,
			})
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to run the server on (overrides config and PORT)")
	cmd.Flags().StringP("config", "c", "", "Path to configuration file (TOML or YAML)")

	return cmd
}
