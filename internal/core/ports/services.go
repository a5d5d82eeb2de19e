package ports

import (
	"context"
	"time"

	"points-exchange/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateResolver resolves an exchange rate between two programs, directly or
// through the hub currency. Rate reads are lock-free snapshot reads.
type RateResolver interface {
	Resolve(ctx context.Context, from, to domain.Program) (decimal.Decimal, error)
}

// RateCache is the Redis-layer cache for resolved rates (fast path).
type RateCache interface {
	Get(ctx context.Context, from, to domain.Program) (decimal.Decimal, bool, error)
	Set(ctx context.Context, from, to domain.Program, rate decimal.Decimal, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// ConversionService performs atomic wallet-to-wallet conversions.
type ConversionService interface {
	Convert(ctx context.Context, req ConvertRequest) (*domain.Transaction, error)
}

// ConvertRequest holds validated input for a conversion.
type ConvertRequest struct {
	UserID      uuid.UUID
	FromProgram domain.Program
	ToProgram   domain.Program
	Amount      int64
}

// WalletService exposes balance reads and credits outside the exchange path.
type WalletService interface {
	ListWallets(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error)
	Topup(ctx context.Context, userID uuid.UUID, program domain.Program, amount int64) (*domain.Wallet, error)
}

// TradeService manages the peer-to-peer offer book.
type TradeService interface {
	CreateOffer(ctx context.Context, req CreateOfferRequest) (*domain.TradeOffer, error)
	AcceptOffer(ctx context.Context, offerID, acceptorID uuid.UUID) (*domain.TradeTransaction, error)
	CancelOffer(ctx context.Context, offerID, callerID uuid.UUID) error
	ListOffers(ctx context.Context, limit int) ([]domain.TradeOffer, error)
	// SweepExpired settles every ACTIVE offer past its deadline. Idempotent;
	// invoked by the external scheduler. Returns the number of offers expired.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// CreateOfferRequest holds validated input for offer creation.
type CreateOfferRequest struct {
	CreatorID       uuid.UUID
	FromProgram     domain.Program
	ToProgram       domain.Program
	AmountOffered   int64
	AmountRequested int64
	ExpiresAt       time.Time
}

// TierService exposes membership-tier reads and the month rollover hook.
type TierService interface {
	GetTierStatus(ctx context.Context, userID uuid.UUID) (*domain.TierStatus, error)
	// RolloverMonth resets monthly counters for stale periods. Idempotent;
	// invoked by the external scheduler at UTC month boundaries.
	RolloverMonth(ctx context.Context, now time.Time) (int64, error)
}

// RewardService valuates balances against the static reward catalogue.
type RewardService interface {
	Valuate(program domain.Program, balance int64) (*domain.RewardValuation, error)
}
