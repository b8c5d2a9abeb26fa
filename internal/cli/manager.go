package cli

import (
	"context"

	"detention/internal/cli/commands"

	"github.com/spf13/cobra"
)

// Manager handles CLI operations
type Manager struct {
	runtime commands.Runtime
	version string
	rootCmd *cobra.Command
}

// New creates a new CLI manager
func New(rt commands.Runtime, version string) *Manager {
	m := &Manager{
		runtime: rt,
		version: version,
		rootCmd: createRootCommand(),
	}
	m.setupCommands()
	return m
}

// Root returns the root command
func (m *Manager) Root() *cobra.Command {
	return m.rootCmd
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	m.rootCmd.AddCommand(
		commands.ServeCommand(m.runtime),
		commands.InspectCommand(m.runtime),
		commands.VersionCommand(m.version),
	)
}
