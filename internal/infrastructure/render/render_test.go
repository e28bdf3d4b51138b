package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dicegame_config/internal/domain/entity"
	networkdefinition "dicegame_config/internal/infrastructure/network/definition"
)

func TestJSONUsesRecordKeys(t *testing.T) {
	data, err := JSON(networkdefinition.ContractConfig())
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.ElementsMatch(t, []string{"NETWORK", "CONTRACTS", "UI", "GAS"}, keys(raw))
	assert.EqualValues(t, 41, raw["NETWORK"]["CHAIN_ID"])
	assert.Equal(t, "0xAa3e0954f3b665e84c3baE5e159A27FF70edf955", raw["CONTRACTS"]["DICE_GAME_V2"])
	assert.Equal(t, true, raw["UI"]["SOUND_ENABLED"])
	assert.EqualValues(t, 150000, raw["GAS"]["DELETE_ROOM"])

	currency, ok := raw["NETWORK"]["CURRENCY"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 18, currency["DECIMALS"])
}

func TestJSONDecodesBackToEqualRecord(t *testing.T) {
	want := networkdefinition.ContractConfig()
	data, err := JSON(want)
	require.NoError(t, err)

	var got entity.ContractConfig
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestYAML(t *testing.T) {
	data, err := YAML(networkdefinition.ContractConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "CHAIN_ID: 41")
	assert.Contains(t, string(data), "AUTO_REFRESH_INTERVAL: 30000")

	var got entity.ContractConfig
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, networkdefinition.ContractConfig(), got)
}

func TestScript(t *testing.T) {
	data, err := Script(networkdefinition.ContractConfig())
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.Contains(out, "const CONTRACT_CONFIG = {"))
	assert.Contains(t, out, `"DICE_GAME_V1": "0x5Cf84Ad10D2ecb4BD0303BA1d3715a4A13BFeB3c"`)
	assert.Contains(t, out, "module.exports = CONTRACT_CONFIG;")
	assert.Contains(t, out, "window.CONTRACT_CONFIG = CONTRACT_CONFIG;")
	assert.Less(t, strings.Index(out, "module.exports"), strings.Index(out, "window.CONTRACT_CONFIG"),
		"module branch must be checked before the global fallback")
	assert.NotContains(t, out, "&#34;", "record must not be HTML-escaped")
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, f := range Formats() {
		first, err := Render(f, networkdefinition.ContractConfig())
		require.NoError(t, err)
		second, err := Render(f, networkdefinition.ContractConfig())
		require.NoError(t, err)
		assert.Equal(t, first, second, f)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"JSON": FormatJSON, "yml": FormatYAML, "javascript": FormatScript} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)

	_, err = Render("toml", networkdefinition.ContractConfig())
	assert.Error(t, err)
}

func keys(m map[string]map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
