package service

import (
	"context"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService: balance reads and
// credits that sit outside the exchange path (program earn feeds, demos).
type WalletServiceImpl struct {
	walletStore ports.WalletStore
	transactor  ports.DBTransactor
	maxRetries  int
	log         zerolog.Logger
}

// NewWalletService creates a WalletServiceImpl.
func NewWalletService(walletStore ports.WalletStore, transactor ports.DBTransactor, maxRetries int, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletStore: walletStore,
		transactor:  transactor,
		maxRetries:  maxRetries,
		log:         log,
	}
}

// ListWallets returns all of a user's wallets.
func (s *WalletServiceImpl) ListWallets(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	wallets, err := s.walletStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return wallets, nil
}

// Topup credits a wallet, creating it on first use.
func (s *WalletServiceImpl) Topup(ctx context.Context, userID uuid.UUID, program domain.Program, amount int64) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !program.Valid() {
		return nil, apperror.ErrUnknownProgram(string(program))
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		w, err := s.topupOnce(ctx, userID, program, amount)
		if err == nil {
			return w, nil
		}
		if !isRetryableTxErr(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperror.ErrConcurrencyConflict(lastErr)
}

func (s *WalletServiceImpl) topupOnce(ctx context.Context, userID uuid.UUID, program domain.Program, amount int64) (*domain.Wallet, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()

	wallet, err := s.walletStore.GetForUpdate(ctx, dbTx, userID, program)
	if err != nil {
		return nil, storeErr("lock wallet", err)
	}
	if wallet == nil {
		wallet = &domain.Wallet{
			ID:        uuid.New(),
			UserID:    userID,
			Program:   program,
			Balance:   amount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.walletStore.CreateInTx(ctx, dbTx, wallet); err != nil {
			return nil, storeErr("create wallet", err)
		}
	} else {
		wallet.Balance += amount
		if err := s.walletStore.UpdateBalances(ctx, dbTx, wallet.ID, wallet.Balance, wallet.Escrowed); err != nil {
			return nil, storeErr("credit wallet", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storeErr("commit topup", err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("program", string(program)).
		Int64("amount", amount).
		Msg("wallet topped up")

	return wallet, nil
}
