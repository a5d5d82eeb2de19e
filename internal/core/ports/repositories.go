package ports

import (
	"context"
	"time"

	"points-exchange/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletStore defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for
// pessimistic locking; escrow accounting and balance updates always
// travel through the same transaction.
type WalletStore interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	CreateInTx(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	Get(ctx context.Context, userID uuid.UUID, program domain.Program) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID, program domain.Program) (*domain.Wallet, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, escrowed int64) error
}

// TransactionLog is the append-only conversion history.
type TransactionLog interface {
	Append(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
}

// UserStatsStore defines persistence for per-user conversion stats.
type UserStatsStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.UserStats, error)
	Upsert(ctx context.Context, tx pgx.Tx, stats *domain.UserStats) error
	// ResetMonthly zeroes monthly counters for every stats row whose period
	// predates periodStart and re-anchors them. Returns the rows affected.
	ResetMonthly(ctx context.Context, periodStart time.Time, baseTier domain.Tier) (int64, error)
}

// TradeOfferStore defines persistence for trade offers and trades.
type TradeOfferStore interface {
	Create(ctx context.Context, tx pgx.Tx, offer *domain.TradeOffer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOffer, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TradeOffer, error)
	ListActive(ctx context.Context, limit int) ([]domain.TradeOffer, error)
	// ListExpiredForUpdate locks and returns ACTIVE offers whose deadline has
	// passed. Uses SKIP LOCKED so concurrent sweeps divide the work.
	ListExpiredForUpdate(ctx context.Context, tx pgx.Tx, now time.Time) ([]domain.TradeOffer, error)
	// TransitionStatus performs a conditional update from -> to. Returns
	// false (no error) when the offer was no longer in the from status,
	// which guarantees each transition happens exactly once.
	TransitionStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.OfferStatus) (bool, error)
	CreateTrade(ctx context.Context, tx pgx.Tx, trade *domain.TradeTransaction) error
}

// RateSource supplies exchange-rate snapshots from the external feed.
// Read-only to the engine; returns nil, nil when no direct pairing exists.
type RateSource interface {
	GetRate(ctx context.Context, from, to domain.Program) (*domain.ExchangeRate, error)
}

// RateFeedStore is the write side of the rate feed, used by the ingest
// hook the feed scheduler calls.
type RateFeedStore interface {
	Upsert(ctx context.Context, rate *domain.ExchangeRate) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
