package entity

// CurrencyDefinition describes the native currency of a network.
type CurrencyDefinition struct {
	Name     string `json:"NAME" yaml:"NAME"`
	Symbol   string `json:"SYMBOL" yaml:"SYMBOL"`
	Decimals uint8  `json:"DECIMALS" yaml:"DECIMALS"` // Количество десятичных знаков для нативного токена
}

// NetworkDefinition holds the parameters of the network the game contracts are deployed to.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ChainID          uint64             `json:"CHAIN_ID" yaml:"CHAIN_ID"`
	Name             string             `json:"NAME" yaml:"NAME"`
	RPCURL           string             `json:"RPC_URL" yaml:"RPC_URL"`
	BlockExplorerURL string             `json:"BLOCK_EXPLORER" yaml:"BLOCK_EXPLORER"`
	Currency         CurrencyDefinition `json:"CURRENCY" yaml:"CURRENCY"`
}
