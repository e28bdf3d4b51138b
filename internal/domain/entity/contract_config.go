package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Group names as they appear in the exported record.
const (
	GroupNetwork   = "NETWORK"
	GroupContracts = "CONTRACTS"
	GroupUI        = "UI"
	GroupGas       = "GAS"
)

// ErrUnknownGroup is returned when a lookup names a group the record does not have.
var ErrUnknownGroup = errors.New("unknown contract config group")

// ContractsDefinition holds the deployed DiceGame contract addresses.
// DiceGameV1 is the first deployment; clients may still target it.
type ContractsDefinition struct {
	DiceGameV1 string `json:"DICE_GAME_V1" yaml:"DICE_GAME_V1"`
	DiceGameV2 string `json:"DICE_GAME_V2" yaml:"DICE_GAME_V2"`
}

// UIDefinition holds front-end constants.
type UIDefinition struct {
	AutoRefreshIntervalMs int64 `json:"AUTO_REFRESH_INTERVAL" yaml:"AUTO_REFRESH_INTERVAL"`
	MaxPlayersDisplay     int   `json:"MAX_PLAYERS_DISPLAY" yaml:"MAX_PLAYERS_DISPLAY"`
	SoundEnabled          bool  `json:"SOUND_ENABLED" yaml:"SOUND_ENABLED"`
	AnimationEnabled      bool  `json:"ANIMATION_ENABLED" yaml:"ANIMATION_ENABLED"`
}

// GasDefinition holds the gas limit used for each contract operation.
type GasDefinition struct {
	CreateRoom uint64 `json:"CREATE_ROOM" yaml:"CREATE_ROOM"`
	JoinRoom   uint64 `json:"JOIN_ROOM" yaml:"JOIN_ROOM"`
	StartGame  uint64 `json:"START_GAME" yaml:"START_GAME"`
	DeleteRoom uint64 `json:"DELETE_ROOM" yaml:"DELETE_ROOM"`
}

// ContractConfig is the complete configuration record consumed by the game front-end.
// It contains only value fields, so a copy never shares state with its source.
type ContractConfig struct {
	Network   NetworkDefinition   `json:"NETWORK" yaml:"NETWORK"`
	Contracts ContractsDefinition `json:"CONTRACTS" yaml:"CONTRACTS"`
	UI        UIDefinition        `json:"UI" yaml:"UI"`
	Gas       GasDefinition       `json:"GAS" yaml:"GAS"`
}

// GasOperation identifies a contract call that has a configured gas limit.
type GasOperation string

const (
	GasCreateRoom GasOperation = "CREATE_ROOM"
	GasJoinRoom   GasOperation = "JOIN_ROOM"
	GasStartGame  GasOperation = "START_GAME"
	GasDeleteRoom GasOperation = "DELETE_ROOM"
)

// GasOperations lists operations in the order they appear in the record.
func GasOperations() []GasOperation {
	return []GasOperation{GasCreateRoom, GasJoinRoom, GasStartGame, GasDeleteRoom}
}

// ParseGasOperation accepts both "CREATE_ROOM" and "create-room" spellings.
func ParseGasOperation(s string) (GasOperation, bool) {
	normalized := GasOperation(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	for _, op := range GasOperations() {
		if op == normalized {
			return op, true
		}
	}
	return "", false
}

// GasLimit returns the configured limit for op.
func (c ContractConfig) GasLimit(op GasOperation) (uint64, bool) {
	switch op {
	case GasCreateRoom:
		return c.Gas.CreateRoom, true
	case GasJoinRoom:
		return c.Gas.JoinRoom, true
	case GasStartGame:
		return c.Gas.StartGame, true
	case GasDeleteRoom:
		return c.Gas.DeleteRoom, true
	}
	return 0, false
}

// RefreshInterval converts UI.AUTO_REFRESH_INTERVAL to a duration.
func (c ContractConfig) RefreshInterval() time.Duration {
	return time.Duration(c.UI.AutoRefreshIntervalMs) * time.Millisecond
}

// ActiveContract is the address new games should be sent to.
func (c ContractConfig) ActiveContract() common.Address {
	return common.HexToAddress(c.Contracts.DiceGameV2)
}

// LegacyContract is the first deployment.
func (c ContractConfig) LegacyContract() common.Address {
	return common.HexToAddress(c.Contracts.DiceGameV1)
}

// Group returns one top-level group by name. Matching is case-insensitive.
func (c ContractConfig) Group(name string) (any, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case GroupNetwork:
		return c.Network, nil
	case GroupContracts:
		return c.Contracts, nil
	case GroupUI:
		return c.UI, nil
	case GroupGas:
		return c.Gas, nil
	}
	return nil, ErrUnknownGroup
}
