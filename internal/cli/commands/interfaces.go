package commands

import (
	"context"
	"io"
)

// ServeOptions are the flags of the serve command
type ServeOptions struct {
	ConfigPath string
	Port       int // 0 keeps the configured port
}

// InspectOptions are the flags and arguments of the inspect command
type InspectOptions struct {
	ConfigPath  string
	RequestType string
	ShortHash   string
}

// Runtime is implemented by the application and does the work behind the commands
type Runtime interface {
	Serve(ctx context.Context, opts ServeOptions) error
	Inspect(ctx context.Context, opts InspectOptions, out io.Writer) error
}
