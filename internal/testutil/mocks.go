package testutil

import (
	"context"
	"encoding/json"

	"detention/internal/types"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/mock"
)

// MockInstanceClient is a testify mock of the management API client
type MockInstanceClient struct {
	mock.Mock
}

// NewMockInstanceClient creates a new mock client
func NewMockInstanceClient() *MockInstanceClient {
	return &MockInstanceClient{}
}

// FetchInstance implements interfaces.InstanceFetcher
func (m *MockInstanceClient) FetchInstance(ctx context.Context, shortHash string) (*types.Instance, error) {
	args := m.Called(ctx, shortHash)
	instance, _ := args.Get(0).(*types.Instance)
	return instance, args.Error(1)
}

// Authenticate implements interfaces.Authenticator
func (m *MockInstanceClient) Authenticate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// NewInstance returns the fixture instance used across tests: api owned by
// casey on master, exposing port 80.
func NewInstance(status types.Status) *types.Instance {
	return &types.Instance{
		ShortHash: "axcde",
		Name:      "API",
		LowerName: "api",
		Owner:     types.Owner{Username: "casey"},
		ContextVersion: types.ContextVersion{
			Branch: "master",
		},
		Container: &types.Container{
			Ports: map[nat.Port]json.RawMessage{
				"80/tcp": json.RawMessage(`{}`),
			},
		},
		RawStatus: string(status),
	}
}
