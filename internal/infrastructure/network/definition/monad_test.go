package networkdefinition

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicegame_config/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func TestContractConfigLiteral(t *testing.T) {
	cfg := ContractConfig()

	assert.Equal(t, uint64(41), cfg.Network.ChainID)
	assert.Equal(t, "Monad Testnet", cfg.Network.Name)
	assert.Equal(t, "https://testnet-rpc.monad.xyz", cfg.Network.RPCURL)
	assert.Equal(t, "https://testnet-explorer.monad.xyz", cfg.Network.BlockExplorerURL)
	assert.Equal(t, entity.CurrencyDefinition{Name: "MON", Symbol: "MON", Decimals: 18}, cfg.Network.Currency)

	assert.Equal(t, "0x5Cf84Ad10D2ecb4BD0303BA1d3715a4A13BFeB3c", cfg.Contracts.DiceGameV1)
	assert.Equal(t, "0xAa3e0954f3b665e84c3baE5e159A27FF70edf955", cfg.Contracts.DiceGameV2)

	assert.Equal(t, int64(30000), cfg.UI.AutoRefreshIntervalMs)
	assert.Equal(t, 10, cfg.UI.MaxPlayersDisplay)
	assert.True(t, cfg.UI.SoundEnabled)
	assert.True(t, cfg.UI.AnimationEnabled)

	assert.Equal(t, entity.GasDefinition{CreateRoom: 200000, JoinRoom: 100000, StartGame: 500000, DeleteRoom: 150000}, cfg.Gas)
}

func TestContractConfigFieldTypes(t *testing.T) {
	cfg := ContractConfig()

	kinds := map[string]reflect.Kind{
		"CHAIN_ID":              reflect.TypeOf(cfg.Network.ChainID).Kind(),
		"NAME":                  reflect.TypeOf(cfg.Network.Name).Kind(),
		"DECIMALS":              reflect.TypeOf(cfg.Network.Currency.Decimals).Kind(),
		"DICE_GAME_V2":          reflect.TypeOf(cfg.Contracts.DiceGameV2).Kind(),
		"AUTO_REFRESH_INTERVAL": reflect.TypeOf(cfg.UI.AutoRefreshIntervalMs).Kind(),
		"MAX_PLAYERS_DISPLAY":   reflect.TypeOf(cfg.UI.MaxPlayersDisplay).Kind(),
		"SOUND_ENABLED":         reflect.TypeOf(cfg.UI.SoundEnabled).Kind(),
		"START_GAME":            reflect.TypeOf(cfg.Gas.StartGame).Kind(),
	}
	want := map[string]reflect.Kind{
		"CHAIN_ID":              reflect.Uint64,
		"NAME":                  reflect.String,
		"DECIMALS":              reflect.Uint8,
		"DICE_GAME_V2":          reflect.String,
		"AUTO_REFRESH_INTERVAL": reflect.Int64,
		"MAX_PLAYERS_DISPLAY":   reflect.Int,
		"SOUND_ENABLED":         reflect.Bool,
		"START_GAME":            reflect.Uint64,
	}
	assert.Equal(t, want, kinds)
}

func TestContractConfigInvariants(t *testing.T) {
	cfg := ContractConfig()

	for _, addr := range []string{cfg.Contracts.DiceGameV1, cfg.Contracts.DiceGameV2} {
		assert.Regexp(t, addressPattern, addr)
	}
	assert.GreaterOrEqual(t, cfg.UI.AutoRefreshIntervalMs, int64(0))
	assert.GreaterOrEqual(t, cfg.UI.MaxPlayersDisplay, 0)
	for _, op := range entity.GasOperations() {
		limit, ok := cfg.GasLimit(op)
		require.True(t, ok, op)
		assert.Positive(t, limit, op)
	}
}

func TestContractConfigReturnsIndependentCopies(t *testing.T) {
	first := ContractConfig()
	second := ContractConfig()
	assert.Equal(t, first, second)

	first.Contracts.DiceGameV2 = "0x0000000000000000000000000000000000000000"
	first.UI.SoundEnabled = false

	third := ContractConfig()
	assert.Equal(t, second, third)
	assert.Equal(t, "0xAa3e0954f3b665e84c3baE5e159A27FF70edf955", third.Contracts.DiceGameV2)
}

func TestContractConfigProvider(t *testing.T) {
	p := NewContractConfigProvider(nopLogger{})

	assert.Equal(t, ContractConfig(), p.GetContractConfig())

	t.Run("GetByChainID", func(t *testing.T) {
		cfg, ok := p.GetByChainID(41)
		require.True(t, ok)
		assert.Equal(t, "Monad Testnet", cfg.Network.Name)

		_, ok = p.GetByChainID(1)
		assert.False(t, ok)
	})

	t.Run("GetGroup", func(t *testing.T) {
		group, err := p.GetGroup("gas")
		require.NoError(t, err)
		assert.Equal(t, ContractConfig().Gas, group)

		_, err = p.GetGroup("wallets")
		assert.ErrorIs(t, err, entity.ErrUnknownGroup)
	})

	t.Run("NilProviderFallsBackToBuiltIn", func(t *testing.T) {
		var nilProvider *ContractConfigProvider
		assert.Equal(t, ContractConfig(), nilProvider.GetContractConfig())
		_, ok := nilProvider.GetByChainID(41)
		assert.True(t, ok)
	})
}
