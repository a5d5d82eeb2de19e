package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"points-exchange/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OfferRepo implements ports.TradeOfferStore.
type OfferRepo struct {
	pool Pool
}

// NewOfferRepo creates a new OfferRepo.
func NewOfferRepo(pool Pool) *OfferRepo {
	return &OfferRepo{pool: pool}
}

const offerColumns = "id, creator_id, from_program, to_program, amount_offered, amount_requested, custom_rate, market_rate, status, created_at, expires_at"

func scanOffer(row pgx.Row) (*domain.TradeOffer, error) {
	o := &domain.TradeOffer{}
	err := row.Scan(
		&o.ID, &o.CreatorID, &o.FromProgram, &o.ToProgram,
		&o.AmountOffered, &o.AmountRequested, &o.CustomRate, &o.MarketRate,
		&o.Status, &o.CreatedAt, &o.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new offer inside the caller's transaction, atomically
// with the escrow update that backs it.
func (r *OfferRepo) Create(ctx context.Context, tx pgx.Tx, offer *domain.TradeOffer) error {
	query := `INSERT INTO trade_offers (id, creator_id, from_program, to_program, amount_offered, amount_requested, custom_rate, market_rate, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		offer.ID, offer.CreatorID, offer.FromProgram, offer.ToProgram,
		offer.AmountOffered, offer.AmountRequested, offer.CustomRate, offer.MarketRate,
		offer.Status, offer.CreatedAt, offer.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// GetByID fetches an offer (non-locking read).
func (r *OfferRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM trade_offers WHERE id = $1`

	o, err := scanOffer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

// GetByIDForUpdate fetches an offer with a pessimistic row lock.
// MUST be called within a transaction.
func (r *OfferRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TradeOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM trade_offers WHERE id = $1 FOR UPDATE`

	o, err := scanOffer(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer for update: %w", err)
	}
	return o, nil
}

// ListActive returns open offers for the marketplace view, newest first.
func (r *OfferRepo) ListActive(ctx context.Context, limit int) ([]domain.TradeOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM trade_offers
		WHERE status = $1 AND expires_at > NOW() ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, domain.OfferStatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("list active offers: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

// ListExpiredForUpdate locks and returns ACTIVE offers past their deadline.
// SKIP LOCKED lets concurrent sweeps divide the rows instead of queueing.
func (r *OfferRepo) ListExpiredForUpdate(ctx context.Context, tx pgx.Tx, now time.Time) ([]domain.TradeOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM trade_offers
		WHERE status = $1 AND expires_at <= $2 FOR UPDATE SKIP LOCKED`

	rows, err := tx.Query(ctx, query, domain.OfferStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("list expired offers: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

func collectOffers(rows pgx.Rows) ([]domain.TradeOffer, error) {
	var offers []domain.TradeOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

// TransitionStatus conditionally moves an offer from one status to another.
// Returns false with no error when the row was not in the from status, so
// callers can detect a lost race without parsing errors.
func (r *OfferRepo) TransitionStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.OfferStatus) (bool, error) {
	query := `UPDATE trade_offers SET status = $3 WHERE id = $1 AND status = $2`

	tag, err := tx.Exec(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("transition offer status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CreateTrade records a completed trade inside the caller's transaction.
func (r *OfferRepo) CreateTrade(ctx context.Context, tx pgx.Tx, trade *domain.TradeTransaction) error {
	query := `INSERT INTO trade_transactions (id, offer_id, seller_id, buyer_id, amount_sold, amount_bought, facilitation_fee, fee_rate, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		trade.ID, trade.OfferID, trade.SellerID, trade.BuyerID,
		trade.AmountSold, trade.AmountBought, trade.FacilitationFee,
		trade.FeeRate, trade.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}
