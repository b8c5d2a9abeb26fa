package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionCommand prints the build version
func VersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the detention version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "detention %s\n", version)
		},
	}
}
