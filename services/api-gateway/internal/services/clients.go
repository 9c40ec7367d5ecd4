package services

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"maas-platform/services/api-gateway/internal/config"
	"maas-platform/shared/proto"
)

// Clients bundles the gRPC backends the gateway proxies to.
type Clients struct {
	Registry proto.ModelRegistryClient

	registryConn *grpc.ClientConn
}

// New dials the model-registry backend. The connection is non-blocking;
// per-call deadlines come from the request context.
func New(cfg config.RegistryConfig) (*Clients, error) {
	conn, err := grpc.Dial(
		cfg.Target(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to model registry: %w", err)
	}

	return &Clients{
		Registry:     proto.NewModelRegistryClient(conn),
		registryConn: conn,
	}, nil
}

// Close tears down all backend connections.
func (c *Clients) Close() error {
	if c.registryConn != nil {
		return c.registryConn.Close()
	}
	return nil
}
