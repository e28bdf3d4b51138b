package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/domain/entity"
	"dicegame_config/internal/infrastructure/configloader"
)

// DialFunc creates a client for a network definition.
type DialFunc func(ctx context.Context, netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (port.BlockchainClient, error)

// evmClientProvider implements the port.BlockchainClientProvider interface.
type evmClientProvider struct {
	clients           map[string]port.BlockchainClient
	mu                sync.Mutex
	logger            port.Logger
	dial              DialFunc
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(cfg *configloader.Config, logger port.Logger) port.BlockchainClientProvider {
	return NewEVMClientProviderWithDialer(cfg, logger, NewEVMClient)
}

// NewEVMClientProviderWithDialer is NewEVMClientProvider with a custom dialer.
func NewEVMClientProviderWithDialer(cfg *configloader.Config, logger port.Logger, dial DialFunc) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients:           make(map[string]port.BlockchainClient),
		logger:            logger,
		dial:              dial,
		connectionTimeout: time.Duration(cfg.RpcClient.ConnectTimeoutMs) * time.Millisecond,
		rpcCallTimeout:    time.Duration(cfg.RpcClient.CallTimeoutMs) * time.Millisecond,
	}
}

// GetClient retrieves a blockchain client for the given network definition.
// Clients are cached per chain ID and RPC URL.
func (p *evmClientProvider) GetClient(ctx context.Context, netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clientKey := fmt.Sprintf("%d|%s", netDef.ChainID, netDef.RPCURL)
	if client, exists := p.clients[clientKey]; exists {
		p.logger.Debug("Returning cached EVM client", "network", netDef.Name)
		return client, nil
	}

	p.logger.Info("Creating new EVM client", "network", netDef.Name, "rpc", netDef.RPCURL)
	newClient, err := p.dial(ctx, netDef, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[clientKey] = newClient
	return newClient, nil
}
