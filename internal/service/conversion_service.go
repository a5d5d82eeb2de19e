package service

import (
	"context"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ConversionServiceImpl implements ports.ConversionService. A conversion
// debits the source wallet, credits the destination wallet with
// floor((amount - fee) * rate), appends a transaction record, and folds the
// volume into the user's stats, all inside one database transaction with
// pessimistic wallet locks, so no partial state is ever observable.
type ConversionServiceImpl struct {
	walletStore ports.WalletStore
	txLog       ports.TransactionLog
	statsStore  ports.UserStatsStore
	rates       ports.RateResolver
	fees        *FeeCalculator
	policies    domain.TierPolicySet
	transactor  ports.DBTransactor
	maxRetries  int
	log         zerolog.Logger
}

// NewConversionService creates a ConversionServiceImpl.
func NewConversionService(
	walletStore ports.WalletStore,
	txLog ports.TransactionLog,
	statsStore ports.UserStatsStore,
	rates ports.RateResolver,
	fees *FeeCalculator,
	policies domain.TierPolicySet,
	transactor ports.DBTransactor,
	maxRetries int,
	log zerolog.Logger,
) *ConversionServiceImpl {
	return &ConversionServiceImpl{
		walletStore: walletStore,
		txLog:       txLog,
		statsStore:  statsStore,
		rates:       rates,
		fees:        fees,
		policies:    policies,
		transactor:  transactor,
		maxRetries:  maxRetries,
		log:         log,
	}
}

// Convert performs an atomic wallet-to-wallet conversion.
func (s *ConversionServiceImpl) Convert(ctx context.Context, req ports.ConvertRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !req.FromProgram.Valid() {
		return nil, apperror.ErrUnknownProgram(string(req.FromProgram))
	}
	if !req.ToProgram.Valid() {
		return nil, apperror.ErrUnknownProgram(string(req.ToProgram))
	}
	if req.FromProgram == req.ToProgram {
		return nil, apperror.ErrSameProgram()
	}

	rate, err := s.rates.Resolve(ctx, req.FromProgram, req.ToProgram)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		txn, err := s.convertOnce(ctx, req, rate)
		if err == nil {
			return txn, nil
		}
		if !isRetryableTxErr(err) {
			return nil, err
		}
		lastErr = err
		s.log.Debug().
			Err(err).
			Int("attempt", attempt+1).
			Str("user_id", req.UserID.String()).
			Msg("conversion conflicted, retrying")
	}

	return nil, apperror.ErrConcurrencyConflict(lastErr)
}

func (s *ConversionServiceImpl) convertOnce(ctx context.Context, req ports.ConvertRequest, rate decimal.Decimal) (*domain.Transaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock both wallets in deterministic order.
	keys := sortWalletKeys([]walletKey{
		{UserID: req.UserID, Program: req.FromProgram},
		{UserID: req.UserID, Program: req.ToProgram},
	})

	var source, dest *domain.Wallet
	for _, k := range keys {
		w, err := s.walletStore.GetForUpdate(ctx, dbTx, k.UserID, k.Program)
		if err != nil {
			return nil, storeErr("lock wallet", err)
		}
		if k.Program == req.FromProgram {
			source = w
		} else {
			dest = w
		}
	}

	if source == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	// Escrowed points back open trade offers and are not spendable here.
	if source.Available() < req.Amount {
		return nil, apperror.ErrInsufficientBalance()
	}

	now := time.Now().UTC()

	stats, err := s.statsStore.GetForUpdate(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, storeErr("lock user stats", err)
	}
	if stats == nil {
		stats = domain.NewUserStats(req.UserID, now)
	} else {
		stats.Rollover(s.policies, now)
	}

	fee := s.fees.ComputeFee(req.Amount, stats.Tier, stats.MonthlyPoints)
	destAmount := decimal.NewFromInt(req.Amount - fee).Mul(rate).Floor().IntPart()

	if err := s.walletStore.UpdateBalances(ctx, dbTx, source.ID, source.Balance-req.Amount, source.Escrowed); err != nil {
		return nil, storeErr("debit source wallet", err)
	}

	if dest == nil {
		dest = &domain.Wallet{
			ID:        uuid.New(),
			UserID:    req.UserID,
			Program:   req.ToProgram,
			Balance:   destAmount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.walletStore.CreateInTx(ctx, dbTx, dest); err != nil {
			return nil, storeErr("create destination wallet", err)
		}
	} else if err := s.walletStore.UpdateBalances(ctx, dbTx, dest.ID, dest.Balance+destAmount, dest.Escrowed); err != nil {
		return nil, storeErr("credit destination wallet", err)
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      req.UserID,
		FromProgram: req.FromProgram,
		ToProgram:   req.ToProgram,
		AmountFrom:  req.Amount,
		AmountTo:    destAmount,
		FeeApplied:  fee,
		Rate:        rate,
		Status:      domain.TransactionStatusCompleted,
		CreatedAt:   now,
	}
	if err := s.txLog.Append(ctx, dbTx, txn); err != nil {
		return nil, storeErr("append transaction", err)
	}

	stats.RecordConversion(s.policies, req.Amount, fee, now)
	if err := s.statsStore.Upsert(ctx, dbTx, stats); err != nil {
		return nil, storeErr("upsert user stats", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storeErr("commit conversion", err)
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("from", string(req.FromProgram)).
		Str("to", string(req.ToProgram)).
		Int64("amount", req.Amount).
		Int64("fee", fee).
		Int64("credited", destAmount).
		Str("tier", string(stats.Tier)).
		Msg("conversion completed")

	return txn, nil
}
