// Package interfaces provides the interfaces shared between the HTTP layer,
// the CLI and the management API client.
package interfaces

import (
	"context"

	"detention/internal/types"
)

// InstanceFetcher looks up an instance by its short hash
type InstanceFetcher interface {
	FetchInstance(ctx context.Context, shortHash string) (*types.Instance, error)
}

// Authenticator logs the client in with a bootstrap credential
type Authenticator interface {
	Authenticate(ctx context.Context, token string) error
}

// InstanceClient is the long-lived, authenticated management API handle
type InstanceClient interface {
	InstanceFetcher
	Authenticator
}
