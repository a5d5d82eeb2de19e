package dto

import (
	"points-exchange/internal/core/domain"
)

// ConvertRequest is the request body for a points conversion.
type ConvertRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	FromProgram string `json:"from_program" binding:"required,program"`
	ToProgram   string `json:"to_program" binding:"required,program"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// TopupRequest is the request body for a wallet credit.
type TopupRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Program string `json:"program" binding:"required,program"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
}

// CreateOfferRequest is the request body for opening a trade offer.
type CreateOfferRequest struct {
	CreatorID       string `json:"creator_id" binding:"required,uuid"`
	FromProgram     string `json:"from_program" binding:"required,program"`
	ToProgram       string `json:"to_program" binding:"required,program"`
	AmountOffered   int64  `json:"amount_offered" binding:"required,gt=0"`
	AmountRequested int64  `json:"amount_requested" binding:"required,gt=0"`
	ExpiresAt       string `json:"expires_at" binding:"required"` // RFC 3339
}

// OfferActionRequest identifies the caller accepting or cancelling an offer.
type OfferActionRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// PublishRateRequest is the feed-ingest body for one rate snapshot.
type PublishRateRequest struct {
	FromProgram string `json:"from_program" binding:"required,program"`
	ToProgram   string `json:"to_program" binding:"required,program"`
	Rate        string `json:"rate" binding:"required"` // decimal string, > 0
}

// ConversionResponse is the response body for a completed conversion.
type ConversionResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	FromProgram string `json:"from_program"`
	ToProgram   string `json:"to_program"`
	AmountFrom  int64  `json:"amount_from"`
	AmountTo    int64  `json:"amount_to"`
	FeeApplied  int64  `json:"fee_applied"`
	Rate        string `json:"rate"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// WalletResponse is one wallet in a balances listing.
type WalletResponse struct {
	ID        string `json:"id"`
	Program   string `json:"program"`
	Balance   int64  `json:"balance"`
	Escrowed  int64  `json:"escrowed"`
	Available int64  `json:"available"`
}

// OfferResponse is the response body for a trade offer.
type OfferResponse struct {
	ID              string `json:"id"`
	CreatorID       string `json:"creator_id"`
	FromProgram     string `json:"from_program"`
	ToProgram       string `json:"to_program"`
	AmountOffered   int64  `json:"amount_offered"`
	AmountRequested int64  `json:"amount_requested"`
	CustomRate      string `json:"custom_rate"`
	MarketRate      string `json:"market_rate"`
	SavingsPct      string `json:"savings_pct"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	ExpiresAt       string `json:"expires_at"`
}

// TradeResponse is the response body for a settled trade.
type TradeResponse struct {
	ID              string `json:"id"`
	OfferID         string `json:"offer_id"`
	SellerID        string `json:"seller_id"`
	BuyerID         string `json:"buyer_id"`
	AmountSold      int64  `json:"amount_sold"`
	AmountBought    int64  `json:"amount_bought"`
	FacilitationFee int64  `json:"facilitation_fee"`
	FeeRate         string `json:"fee_rate"`
	CompletedAt     string `json:"completed_at"`
}

// RateResponse is the response body for a resolved rate.
type RateResponse struct {
	FromProgram string `json:"from_program"`
	ToProgram   string `json:"to_program"`
	Rate        string `json:"rate"`
}

// SweepResponse reports how many offers a sweep expired.
type SweepResponse struct {
	OffersExpired int `json:"offers_expired"`
}

// RolloverResponse reports how many users a month rollover reset.
type RolloverResponse struct {
	UsersReset int64 `json:"users_reset"`
}

// ProgramsResponse lists the supported loyalty programs.
type ProgramsResponse struct {
	Programs []domain.Program `json:"programs"`
}
