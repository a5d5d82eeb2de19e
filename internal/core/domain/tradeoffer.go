package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus is the lifecycle state of a trade offer. Transitions are
// monotonic: ACTIVE -> COMPLETED | CANCELLED | EXPIRED, exactly once.
type OfferStatus string

const (
	OfferStatusActive    OfferStatus = "ACTIVE"
	OfferStatusCompleted OfferStatus = "COMPLETED"
	OfferStatusCancelled OfferStatus = "CANCELLED"
	OfferStatusExpired   OfferStatus = "EXPIRED"
)

// TradeOffer is a peer-to-peer custom-rate offer. While ACTIVE,
// AmountOffered is escrowed in the creator's source wallet.
type TradeOffer struct {
	ID              uuid.UUID       `json:"id"`
	CreatorID       uuid.UUID       `json:"creator_id"`
	FromProgram     Program         `json:"from_program"`
	ToProgram       Program         `json:"to_program"`
	AmountOffered   int64           `json:"amount_offered"`
	AmountRequested int64           `json:"amount_requested"`
	CustomRate      decimal.Decimal `json:"custom_rate"` // requested per offered point
	MarketRate      decimal.Decimal `json:"market_rate"` // resolver snapshot at creation
	Status          OfferStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

// IsActive reports whether the offer can still be accepted or cancelled.
func (o *TradeOffer) IsActive() bool {
	return o.Status == OfferStatusActive
}

// ExpiredAt reports whether the offer's deadline has passed at now.
func (o *TradeOffer) ExpiredAt(now time.Time) bool {
	return !o.ExpiresAt.After(now)
}

// SavingsPct returns how much cheaper the offer is for an acceptor than
// converting at market rate, as a fraction of the market cost. Zero when
// the offer is at or above market.
func (o *TradeOffer) SavingsPct() decimal.Decimal {
	return o.SavingsPctAt(o.MarketRate)
}

// SavingsPctAt computes the acceptor's savings against an explicit market
// rate, for callers holding a fresher snapshot than the one stored.
func (o *TradeOffer) SavingsPctAt(market decimal.Decimal) decimal.Decimal {
	marketCost := decimal.NewFromInt(o.AmountOffered).Mul(market)
	if !marketCost.IsPositive() {
		return decimal.Zero
	}
	savings := marketCost.Sub(decimal.NewFromInt(o.AmountRequested))
	if !savings.IsPositive() {
		return decimal.Zero
	}
	return savings.Div(marketCost)
}

// TradeTransaction records a completed peer-to-peer trade. FacilitationFee
// is the slice of the offered leg withheld by the platform; FeeRate is the
// percentage applied to both legs.
type TradeTransaction struct {
	ID              uuid.UUID       `json:"id"`
	OfferID         uuid.UUID       `json:"offer_id"`
	SellerID        uuid.UUID       `json:"seller_id"`
	BuyerID         uuid.UUID       `json:"buyer_id"`
	AmountSold      int64           `json:"amount_sold"`   // gross offered points
	AmountBought    int64           `json:"amount_bought"` // gross requested points
	FacilitationFee int64           `json:"facilitation_fee"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
	CompletedAt     time.Time       `json:"completed_at"`
}
