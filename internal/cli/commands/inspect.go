package commands

import (
	"fmt"

	"detention/internal/validation"

	"github.com/spf13/cobra"
)

// InspectCommand creates the command that shows which page a request would get
func InspectCommand(rt Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <shortHash>",
		Short: "Show the page an instance would be served",
		Long: `Fetch an instance from the management API and print the page, HTTP status
and header text detention would answer with, without starting the server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			requestType, _ := cmd.Flags().GetString("type")

			return rt.Inspect(cmd.Context(), InspectOptions{
				ConfigPath:  configPath,
				RequestType: requestType,
				ShortHash:   args[0],
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to configuration file (TOML or YAML)")
	cmd.Flags().StringP("type", "t", validation.TypeNotRunning,
		fmt.Sprintf("Request type, one of %v", validation.RequestTypes))

	return cmd
}
