package entity

import (
	"errors"
	"time"
)

var (
	// ErrChainIDMismatch means the RPC endpoint serves a different chain than configured.
	ErrChainIDMismatch = errors.New("rpc chain id does not match configured chain id")
	// ErrNoCode means no bytecode is deployed at a configured contract address.
	ErrNoCode = errors.New("no contract code at address")
)

// Severity grades a verification finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is the outcome of a single check against the configuration record.
type Finding struct {
	Check    string   `json:"check"`
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// OperationFee is the maximum native-currency cost of one contract call at the sampled gas price.
type OperationFee struct {
	Operation       GasOperation `json:"operation"`
	GasLimit        uint64       `json:"gasLimit"`
	MaxFeeWei       string       `json:"maxFeeWei"`
	FormattedMaxFee string       `json:"formattedMaxFee"`
	CurrencySymbol  string       `json:"currencySymbol"`
}

// VerificationReport collects every finding produced by one verification run.
type VerificationReport struct {
	ChainID     uint64         `json:"chainId"`
	NetworkName string         `json:"networkName"`
	CheckedAt   time.Time      `json:"checkedAt"`
	GasPriceWei string         `json:"gasPriceWei,omitempty"`
	Fees        []OperationFee `json:"fees,omitempty"`
	Findings    []Finding      `json:"findings"`
	Cached      bool           `json:"cached"`
}

// HasErrors reports whether any finding is of error severity.
func (r VerificationReport) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
