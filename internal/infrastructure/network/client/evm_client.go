package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/domain/entity"
)

// EVMClient implements the port.BlockchainClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// NewEVMClient dials the network's RPC endpoint.
func NewEVMClient(ctx context.Context, netDef entity.NetworkDefinition, connectionTimeout time.Duration, rpcCallTimeout time.Duration) (port.BlockchainClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, netDef.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s for network %s: %w", netDef.RPCURL, netDef.Name, err)
	}
	return &EVMClient{ethClient: client, netDef: netDef, rpcCallTimeout: rpcCallTimeout}, nil
}

// ChainID returns the chain identifier reported by the node.
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	id, err := c.ethClient.ChainID(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_chainId failed on %s: %w", c.netDef.RPCURL, err)
	}
	return id, nil
}

// CodeAt returns the bytecode deployed at address on the latest block.
func (c *EVMClient) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	code, err := c.ethClient.CodeAt(callCtx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getCode for %s failed on %s: %w", address.Hex(), c.netDef.RPCURL, err)
	}
	return code, nil
}

// SuggestGasPrice returns the node's suggested gas price in wei.
func (c *EVMClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	price, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice failed on %s: %w", c.netDef.RPCURL, err)
	}
	return price, nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}
