package networkdefinition

import (
	"fmt"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/domain/entity"
)

// monadTestnet is the DiceGame deployment on Monad Testnet.
// It is never handed out directly; callers receive copies through ContractConfig.
var monadTestnet = entity.ContractConfig{ //nolint:gochecknoglobals // Global for definitions
	Network: entity.NetworkDefinition{
		ChainID:          41,
		Name:             "Monad Testnet",
		RPCURL:           "https://testnet-rpc.monad.xyz",
		BlockExplorerURL: "https://testnet-explorer.monad.xyz",
		Currency: entity.CurrencyDefinition{
			Name:     "MON",
			Symbol:   "MON",
			Decimals: 18,
		},
	},
	Contracts: entity.ContractsDefinition{
		DiceGameV1: "0x5Cf84Ad10D2ecb4BD0303BA1d3715a4A13BFeB3c", // legacy deployment
		DiceGameV2: "0xAa3e0954f3b665e84c3baE5e159A27FF70edf955", // active
	},
	UI: entity.UIDefinition{
		AutoRefreshIntervalMs: 30000,
		MaxPlayersDisplay:     10,
		SoundEnabled:          true,
		AnimationEnabled:      true,
	},
	Gas: entity.GasDefinition{
		CreateRoom: 200000,
		JoinRoom:   100000,
		StartGame:  500000,
		DeleteRoom: 150000,
	},
}

// ContractConfig returns a copy of the DiceGame configuration record.
func ContractConfig() entity.ContractConfig {
	return monadTestnet
}

// ContractConfigProvider serves the configuration record to the rest of the application.
type ContractConfigProvider struct {
	logger port.Logger
	record entity.ContractConfig
}

// NewContractConfigProvider creates a provider over the built-in record.
func NewContractConfigProvider(log port.Logger) *ContractConfigProvider {
	p := &ContractConfigProvider{
		logger: log,
		record: ContractConfig(),
	}
	p.logger.Info(fmt.Sprintf("ContractConfigProvider initialized for network '%s' (ChainID: %d)", p.record.Network.Name, p.record.Network.ChainID),
		"active_contract", p.record.Contracts.DiceGameV2,
		"legacy_contract", p.record.Contracts.DiceGameV1)
	return p
}

// GetContractConfig returns a copy of the record.
func (p *ContractConfigProvider) GetContractConfig() entity.ContractConfig {
	if p == nil {
		return ContractConfig()
	}
	return p.record
}

// GetByChainID returns the record if it describes chainID.
func (p *ContractConfigProvider) GetByChainID(chainID uint64) (entity.ContractConfig, bool) {
	cfg := p.GetContractConfig()
	if cfg.Network.ChainID != chainID {
		if p != nil {
			p.logger.Debug("No contract config for requested chain", "chain_id", chainID)
		}
		return entity.ContractConfig{}, false
	}
	return cfg, true
}

// GetGroup returns one group of the record by name.
func (p *ContractConfigProvider) GetGroup(name string) (any, error) {
	group, err := p.GetContractConfig().Group(name)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", name, err)
	}
	return group, nil
}
