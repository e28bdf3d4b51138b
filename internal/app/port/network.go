package port

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"dicegame_config/internal/domain/entity"
)

// BlockchainClient defines the read-only calls used to check the record against a live network.
type BlockchainClient interface {
	// ChainID returns the chain identifier reported by the RPC endpoint.
	ChainID(ctx context.Context) (*big.Int, error)

	// CodeAt returns the deployed bytecode at address, empty if none.
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)

	// SuggestGasPrice returns the node's current gas price in wei.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// BlockchainClientProvider defines the interface for providing blockchain clients.
type BlockchainClientProvider interface {
	GetClient(ctx context.Context, networkDefinition entity.NetworkDefinition) (BlockchainClient, error)
}

// ExplorerClient checks that a block explorer answers requests.
type ExplorerClient interface {
	Ping(ctx context.Context, baseURL string) (int, error)
}
