// Package constants defines application-wide constants to avoid magic numbers
package constants

import "time"

// AppName is used for the config directory, log fields and the CLI
const AppName = "detention"

// Network and Port Constants
const (
	// DefaultServerHost is the interface the server binds to
	DefaultServerHost = "0.0.0.0"

	// DefaultServerPort is the default port for the detention server
	DefaultServerPort = 3000

	// DefaultAbsoluteURL is the public host name of the detention service
	DefaultAbsoluteURL = "detention.runnable.io"

	// DefaultAPIURL is the default base URL of the instance management API
	DefaultAPIURL = "http://localhost:3030"
)

// HTTP Configuration
const (
	// DefaultHTTPClientTimeout is the default timeout for API client requests
	DefaultHTTPClientTimeout = 10 * time.Second

	// DefaultServerReadTimeout is the default server read timeout
	DefaultServerReadTimeout = 10 * time.Second

	// DefaultServerWriteTimeout is the default server write timeout
	DefaultServerWriteTimeout = 10 * time.Second

	// DefaultServerShutdownTimeout is the default server graceful shutdown timeout
	DefaultServerShutdownTimeout = 15 * time.Second
)

// Network Port Validation
const (
	// MinPortNumber is the minimum valid TCP port number
	MinPortNumber = 1

	// MaxPortNumber is the maximum valid TCP port number
	MaxPortNumber = 65535
)

// Limits on attacker-controlled query input
const (
	// MaxShortHashLength bounds the shortHash query parameter
	MaxShortHashLength = 64

	// MaxQueryValueLength bounds free-form values copied into the view
	MaxQueryValueLength = 256

	// MaxURLLength bounds redirectUrl and containerUrl
	MaxURLLength = 2048
)
