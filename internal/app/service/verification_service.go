package service

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/domain/entity"
	"dicegame_config/internal/infrastructure/configloader"
	"dicegame_config/internal/pkg/metrics"
	"dicegame_config/internal/pkg/utils"
)

// verificationServiceImpl implements port.VerificationService.
type verificationServiceImpl struct {
	records  port.ContractConfigProvider
	clients  port.BlockchainClientProvider
	explorer port.ExplorerClient
	logger   port.Logger
	metrics  *metrics.Metrics
	reports  *cache.Cache
	limiter  *rate.Limiter
	now      func() time.Time

	refreshMu sync.Mutex
}

// NewVerificationService creates a verification service. m may be nil.
func NewVerificationService(
	records port.ContractConfigProvider,
	clients port.BlockchainClientProvider,
	explorer port.ExplorerClient,
	l port.Logger,
	m *metrics.Metrics,
	cfg *configloader.Config,
) port.VerificationService {
	ttl := time.Duration(cfg.Cache.VerificationTTLMinutes) * time.Minute
	cleanup := time.Duration(cfg.Cache.CleanupIntervalMinutes) * time.Minute
	return &verificationServiceImpl{
		records:  records,
		clients:  clients,
		explorer: explorer,
		logger:   l,
		metrics:  m,
		reports:  cache.New(ttl, cleanup),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RpcClient.RateLimit), cfg.RpcClient.BurstLimit),
		now:      time.Now,
	}
}

func reportKey(chainID uint64) string {
	return "report:" + strconv.FormatUint(chainID, 10)
}

// Verify returns the cached report if one is still fresh, otherwise runs a new verification.
func (s *verificationServiceImpl) Verify(ctx context.Context) (entity.VerificationReport, error) {
	record := s.records.GetContractConfig()
	if cached, ok := s.reports.Get(reportKey(record.Network.ChainID)); ok {
		report := cached.(entity.VerificationReport)
		report.Cached = true
		s.countRun(true)
		s.logger.Debug("Returning cached verification report", "chain_id", record.Network.ChainID, "checked_at", report.CheckedAt)
		return report, nil
	}
	return s.Refresh(ctx)
}

// Invalidate drops every cached report.
func (s *verificationServiceImpl) Invalidate() {
	s.reports.Flush()
}

// Refresh runs every check against the live network and caches the result.
func (s *verificationServiceImpl) Refresh(ctx context.Context) (entity.VerificationReport, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	record := s.records.GetContractConfig()
	report := entity.VerificationReport{
		ChainID:     record.Network.ChainID,
		NetworkName: record.Network.Name,
		CheckedAt:   s.now().UTC(),
	}

	var mu sync.Mutex
	add := func(f entity.Finding) {
		mu.Lock()
		report.Findings = append(report.Findings, f)
		mu.Unlock()
	}

	for _, f := range CheckRecord(record) {
		add(f)
	}

	s.logger.Info("Starting contract config verification", "network", record.Network.Name, "rpc", record.Network.RPCURL)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		status, err := s.explorer.Ping(egCtx, record.Network.BlockExplorerURL)
		switch {
		case err != nil:
			add(entity.Finding{Check: CheckExplorer, Field: "NETWORK.BLOCK_EXPLORER", Severity: entity.SeverityWarning, Message: err.Error()})
		case status >= 500:
			add(entity.Finding{Check: CheckExplorer, Field: "NETWORK.BLOCK_EXPLORER", Severity: entity.SeverityWarning, Message: fmt.Sprintf("explorer answered with status %d", status)})
		default:
			add(entity.Finding{Check: CheckExplorer, Field: "NETWORK.BLOCK_EXPLORER", Severity: entity.SeverityInfo, Message: fmt.Sprintf("explorer reachable (status %d)", status)})
		}
		return nil
	})

	client, err := s.clients.GetClient(ctx, record.Network)
	if err != nil {
		add(entity.Finding{Check: CheckRPCConnect, Field: "NETWORK.RPC_URL", Severity: entity.SeverityError, Message: err.Error()})
	} else {
		s.runChainChecks(egCtx, eg, client, record, &report, &mu, add)
	}

	if err := eg.Wait(); err != nil {
		s.logger.Error("Verification aborted", "error", err)
		return entity.VerificationReport{}, fmt.Errorf("verification aborted: %w", err)
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		if report.Findings[i].Check != report.Findings[j].Check {
			return report.Findings[i].Check < report.Findings[j].Check
		}
		return report.Findings[i].Field < report.Findings[j].Field
	})

	for _, f := range report.Findings {
		if s.metrics != nil {
			s.metrics.VerificationChecks.WithLabelValues(f.Check, string(f.Severity)).Inc()
		}
		if f.Severity == entity.SeverityError {
			s.logger.Warn("Verification finding", "check", f.Check, "field", f.Field, "message", f.Message)
		}
	}
	s.countRun(false)

	s.reports.SetDefault(reportKey(record.Network.ChainID), report)
	s.logger.Info("Contract config verification finished", "findings", len(report.Findings), "has_errors", report.HasErrors())
	return report, nil
}

// runChainChecks schedules the RPC-backed checks on eg. Each call waits on the shared limiter;
// only a cancelled context aborts the group, individual RPC failures become findings.
func (s *verificationServiceImpl) runChainChecks(
	ctx context.Context,
	eg *errgroup.Group,
	client port.BlockchainClient,
	record entity.ContractConfig,
	report *entity.VerificationReport,
	mu *sync.Mutex,
	add func(entity.Finding),
) {
	eg.Go(func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		id, err := client.ChainID(ctx)
		if err != nil {
			add(entity.Finding{Check: CheckChainID, Field: "NETWORK.CHAIN_ID", Severity: entity.SeverityError, Message: err.Error()})
			return nil
		}
		if !id.IsUint64() || id.Uint64() != record.Network.ChainID {
			err := fmt.Errorf("%w: configured %d, rpc reports %s", entity.ErrChainIDMismatch, record.Network.ChainID, id.String())
			add(entity.Finding{Check: CheckChainID, Field: "NETWORK.CHAIN_ID", Severity: entity.SeverityError, Message: err.Error()})
			return nil
		}
		add(entity.Finding{Check: CheckChainID, Field: "NETWORK.CHAIN_ID", Severity: entity.SeverityInfo, Message: "rpc chain id matches"})
		return nil
	})

	contracts := []struct {
		field    string
		address  common.Address
		severity entity.Severity
	}{
		{"CONTRACTS.DICE_GAME_V1", record.LegacyContract(), entity.SeverityWarning},
		{"CONTRACTS.DICE_GAME_V2", record.ActiveContract(), entity.SeverityError},
	}
	for _, c := range contracts {
		eg.Go(func() error {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
			code, err := client.CodeAt(ctx, c.address)
			if err != nil {
				add(entity.Finding{Check: CheckContractCode, Field: c.field, Severity: c.severity, Message: err.Error()})
				return nil
			}
			if len(code) == 0 {
				err := fmt.Errorf("%w %s", entity.ErrNoCode, c.address.Hex())
				add(entity.Finding{Check: CheckContractCode, Field: c.field, Severity: c.severity, Message: err.Error()})
				return nil
			}
			add(entity.Finding{Check: CheckContractCode, Field: c.field, Severity: entity.SeverityInfo, Message: fmt.Sprintf("%d bytes of code deployed", len(code))})
			return nil
		})
	}

	eg.Go(func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		price, err := client.SuggestGasPrice(ctx)
		if err != nil {
			add(entity.Finding{Check: CheckGasPrice, Field: "GAS", Severity: entity.SeverityWarning, Message: err.Error()})
			return nil
		}
		fees := operationFees(record, price)
		mu.Lock()
		report.GasPriceWei = price.String()
		report.Fees = fees
		mu.Unlock()
		return nil
	})
}

// operationFees prices every configured gas limit at gasPrice.
func operationFees(record entity.ContractConfig, gasPrice *big.Int) []entity.OperationFee {
	fees := make([]entity.OperationFee, 0, len(entity.GasOperations()))
	for _, op := range entity.GasOperations() {
		limit, _ := record.GasLimit(op)
		fee := utils.MulUint64(gasPrice, limit)
		fees = append(fees, entity.OperationFee{
			Operation:       op,
			GasLimit:        limit,
			MaxFeeWei:       fee.String(),
			FormattedMaxFee: utils.FormatBigInt(fee, record.Network.Currency.Decimals),
			CurrencySymbol:  record.Network.Currency.Symbol,
		})
	}
	return fees
}

func (s *verificationServiceImpl) countRun(cached bool) {
	if s.metrics != nil {
		s.metrics.VerificationRuns.WithLabelValues(strconv.FormatBool(cached)).Inc()
	}
}
