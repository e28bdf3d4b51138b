package service

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/domain/entity"
	"dicegame_config/internal/infrastructure/configloader"
	networkdefinition "dicegame_config/internal/infrastructure/network/definition"
	"dicegame_config/internal/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeChain struct {
	def      entity.NetworkDefinition
	chainID  int64
	code     map[common.Address][]byte
	gasPrice *big.Int
	calls    atomic.Int32
}

func (f *fakeChain) ChainID(context.Context) (*big.Int, error) {
	f.calls.Add(1)
	return big.NewInt(f.chainID), nil
}

func (f *fakeChain) CodeAt(_ context.Context, address common.Address) ([]byte, error) {
	f.calls.Add(1)
	return f.code[address], nil
}

func (f *fakeChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	f.calls.Add(1)
	if f.gasPrice == nil {
		return nil, errors.New("method not found")
	}
	return f.gasPrice, nil
}

func (f *fakeChain) Definition() entity.NetworkDefinition { return f.def }

type fakeClients struct {
	client port.BlockchainClient
	err    error
}

func (f fakeClients) GetClient(context.Context, entity.NetworkDefinition) (port.BlockchainClient, error) {
	return f.client, f.err
}

type fakeExplorer struct {
	status int
	err    error
}

func (f fakeExplorer) Ping(context.Context, string) (int, error) { return f.status, f.err }

func healthyChain() *fakeChain {
	record := networkdefinition.ContractConfig()
	return &fakeChain{
		def:     record.Network,
		chainID: 41,
		code: map[common.Address][]byte{
			record.ActiveContract(): {0x60, 0x80, 0x60, 0x40},
			record.LegacyContract(): {0x60, 0x80},
		},
		gasPrice: big.NewInt(50_000_000_000),
	}
}

func newTestService(t *testing.T, clients port.BlockchainClientProvider, explorer port.ExplorerClient) (port.VerificationService, *metrics.Metrics) {
	t.Helper()
	cfg := configloader.Default()
	cfg.RpcClient.RateLimit = 1000
	cfg.RpcClient.BurstLimit = 10
	m := metrics.New(prometheus.NewRegistry())
	svc := NewVerificationService(networkdefinition.NewContractConfigProvider(nopLogger{}), clients, explorer, nopLogger{}, m, cfg)
	return svc, m
}

func TestVerifyHealthyNetwork(t *testing.T) {
	svc, m := newTestService(t, fakeClients{client: healthyChain()}, fakeExplorer{status: 200})

	report, err := svc.Verify(context.Background())
	require.NoError(t, err)

	assert.False(t, report.HasErrors(), "%+v", report.Findings)
	assert.False(t, report.Cached)
	assert.Equal(t, uint64(41), report.ChainID)
	assert.Equal(t, "Monad Testnet", report.NetworkName)
	assert.Equal(t, "50000000000", report.GasPriceWei)

	chainFinding, ok := findingFor(report.Findings, CheckChainID, "NETWORK.CHAIN_ID")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityInfo, chainFinding.Severity)

	require.Len(t, report.Fees, 4)
	assert.Equal(t, entity.GasStartGame, report.Fees[2].Operation)
	assert.Equal(t, "25000000000000000", report.Fees[2].MaxFeeWei)
	assert.Equal(t, "0.025", report.Fees[2].FormattedMaxFee)
	assert.Equal(t, "MON", report.Fees[2].CurrencySymbol)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationChecks.WithLabelValues(CheckChainID, "info")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationRuns.WithLabelValues("false")))
}

func TestVerifyDetectsMismatchesAndMissingCode(t *testing.T) {
	chain := healthyChain()
	chain.chainID = 10143
	delete(chain.code, networkdefinition.ContractConfig().ActiveContract())
	delete(chain.code, networkdefinition.ContractConfig().LegacyContract())

	svc, _ := newTestService(t, fakeClients{client: chain}, fakeExplorer{status: 503})

	report, err := svc.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, report.HasErrors())

	f, ok := findingFor(report.Findings, CheckChainID, "NETWORK.CHAIN_ID")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityError, f.Severity)
	assert.Contains(t, f.Message, entity.ErrChainIDMismatch.Error())

	f, ok = findingFor(report.Findings, CheckContractCode, "CONTRACTS.DICE_GAME_V2")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityError, f.Severity)

	f, ok = findingFor(report.Findings, CheckContractCode, "CONTRACTS.DICE_GAME_V1")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityWarning, f.Severity, "a missing legacy contract is not fatal")

	f, ok = findingFor(report.Findings, CheckExplorer, "NETWORK.BLOCK_EXPLORER")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityWarning, f.Severity)
}

func TestVerifyRPCUnavailable(t *testing.T) {
	svc, _ := newTestService(t, fakeClients{err: errors.New("dial tcp: connection refused")}, fakeExplorer{err: errors.New("timeout")})

	report, err := svc.Verify(context.Background())
	require.NoError(t, err)

	f, ok := findingFor(report.Findings, CheckRPCConnect, "NETWORK.RPC_URL")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityError, f.Severity)
	assert.Empty(t, report.Fees)
}

func TestVerifyWithoutGasPrice(t *testing.T) {
	chain := healthyChain()
	chain.gasPrice = nil
	svc, _ := newTestService(t, fakeClients{client: chain}, fakeExplorer{status: 200})

	report, err := svc.Verify(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.GasPriceWei)
	f, ok := findingFor(report.Findings, CheckGasPrice, "GAS")
	require.True(t, ok)
	assert.Equal(t, entity.SeverityWarning, f.Severity)
}

func TestVerifyCachesReports(t *testing.T) {
	chain := healthyChain()
	svc, m := newTestService(t, fakeClients{client: chain}, fakeExplorer{status: 200})
	ctx := context.Background()

	first, err := svc.Verify(ctx)
	require.NoError(t, err)
	callsAfterFirst := chain.calls.Load()

	second, err := svc.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.CheckedAt, second.CheckedAt)
	assert.Equal(t, callsAfterFirst, chain.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationRuns.WithLabelValues("true")))

	svc.Invalidate()
	third, err := svc.Verify(ctx)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Greater(t, chain.calls.Load(), callsAfterFirst)

	refreshed, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, refreshed.Cached)
}

func TestVerifyAbortsOnCancelledContext(t *testing.T) {
	cfg := configloader.Default()
	cfg.RpcClient.RateLimit = 0.001
	cfg.RpcClient.BurstLimit = 1
	svc := NewVerificationService(networkdefinition.NewContractConfigProvider(nopLogger{}),
		fakeClients{client: healthyChain()}, fakeExplorer{status: 200}, nopLogger{}, nil, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.Refresh(ctx)
	assert.Error(t, err)
}
