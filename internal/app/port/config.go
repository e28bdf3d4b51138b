package port

import (
	"dicegame_config/internal/domain/entity"
	"dicegame_config/internal/infrastructure/configloader"
)

// ConfigProvider defines the interface for accessing service configuration.
type ConfigProvider interface {
	GetConfig() *configloader.Config
}

// ContractConfigProvider defines the interface for accessing the DiceGame contract record.
type ContractConfigProvider interface {
	GetContractConfig() entity.ContractConfig
	GetByChainID(chainID uint64) (entity.ContractConfig, bool)
	GetGroup(name string) (any, error)
}
