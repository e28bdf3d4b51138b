package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"dicegame_config/internal/domain/entity"
)

// Check names reported in findings.
const (
	CheckAddressFormat    = "address_format"
	CheckAddressChecksum  = "address_checksum"
	CheckDistinctContract = "distinct_contracts"
	CheckNonNegative      = "non_negative"
	CheckGasLimit         = "gas_limit"
	CheckURL              = "url"
	CheckCurrency         = "currency"
	CheckRPCConnect       = "rpc_connect"
	CheckChainID          = "chain_id"
	CheckContractCode     = "contract_code"
	CheckGasPrice         = "gas_price"
	CheckExplorer         = "explorer"
)

const addressHexLength = 2 + 2*common.AddressLength

// CheckRecord inspects the literal values of cfg without touching the network.
// A well-formed record yields no findings of error severity.
func CheckRecord(cfg entity.ContractConfig) []entity.Finding {
	var findings []entity.Finding

	addresses := []struct {
		field string
		value string
	}{
		{"CONTRACTS.DICE_GAME_V1", cfg.Contracts.DiceGameV1},
		{"CONTRACTS.DICE_GAME_V2", cfg.Contracts.DiceGameV2},
	}
	for _, a := range addresses {
		findings = append(findings, checkAddress(a.field, a.value)...)
	}

	if strings.EqualFold(cfg.Contracts.DiceGameV1, cfg.Contracts.DiceGameV2) {
		findings = append(findings, entity.Finding{
			Check:    CheckDistinctContract,
			Field:    "CONTRACTS",
			Severity: entity.SeverityWarning,
			Message:  "legacy and active contract addresses are identical",
		})
	}

	if cfg.UI.AutoRefreshIntervalMs < 0 {
		findings = append(findings, negative("UI.AUTO_REFRESH_INTERVAL", cfg.UI.AutoRefreshIntervalMs))
	}
	if cfg.UI.MaxPlayersDisplay < 0 {
		findings = append(findings, negative("UI.MAX_PLAYERS_DISPLAY", int64(cfg.UI.MaxPlayersDisplay)))
	}

	for _, op := range entity.GasOperations() {
		if limit, _ := cfg.GasLimit(op); limit == 0 {
			findings = append(findings, entity.Finding{
				Check:    CheckGasLimit,
				Field:    "GAS." + string(op),
				Severity: entity.SeverityWarning,
				Message:  "gas limit is zero; the transaction would be rejected",
			})
		}
	}

	findings = append(findings, checkURL("NETWORK.RPC_URL", cfg.Network.RPCURL)...)
	findings = append(findings, checkURL("NETWORK.BLOCK_EXPLORER", cfg.Network.BlockExplorerURL)...)

	if cfg.Network.Currency.Symbol == "" {
		findings = append(findings, entity.Finding{
			Check:    CheckCurrency,
			Field:    "NETWORK.CURRENCY.SYMBOL",
			Severity: entity.SeverityWarning,
			Message:  "native currency symbol is empty",
		})
	}

	return findings
}

func checkAddress(field, value string) []entity.Finding {
	if len(value) != addressHexLength || !strings.HasPrefix(value, "0x") || !common.IsHexAddress(value) {
		return []entity.Finding{{
			Check:    CheckAddressFormat,
			Field:    field,
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("%q is not a 0x-prefixed %d-digit hex address", value, 2*common.AddressLength),
		}}
	}

	hex := value[2:]
	mixedCase := strings.ToLower(hex) != hex && strings.ToUpper(hex) != hex
	if mixedCase {
		if want := common.HexToAddress(value).Hex(); want != value {
			return []entity.Finding{{
				Check:    CheckAddressChecksum,
				Field:    field,
				Severity: entity.SeverityWarning,
				Message:  fmt.Sprintf("EIP-55 checksum mismatch, expected %s", want),
			}}
		}
	}
	return nil
}

func checkURL(field, raw string) []entity.Finding {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []entity.Finding{{
			Check:    CheckURL,
			Field:    field,
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("%q is not an absolute http(s) URL", raw),
		}}
	}
	return nil
}

func negative(field string, v int64) entity.Finding {
	return entity.Finding{
		Check:    CheckNonNegative,
		Field:    field,
		Severity: entity.SeverityError,
		Message:  fmt.Sprintf("value %d is negative", v),
	}
}
