package service

import (
	"context"
	"errors"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FacilitationPolicy sets the fee charged on peer-to-peer trades: a share
// of the savings the acceptor realizes against market rate, clamped to
// [MinPct, MaxPct].
type FacilitationPolicy struct {
	SavingsShare decimal.Decimal
	MinPct       decimal.Decimal
	MaxPct       decimal.Decimal
}

// RateFor maps an acceptor's savings percentage to the clamped fee rate.
func (p FacilitationPolicy) RateFor(savingsPct decimal.Decimal) decimal.Decimal {
	rate := savingsPct.Mul(p.SavingsShare)
	if rate.LessThan(p.MinPct) {
		return p.MinPct
	}
	if rate.GreaterThan(p.MaxPct) {
		return p.MaxPct
	}
	return rate
}

// TradeServiceImpl implements ports.TradeService: the peer-to-peer offer
// book with escrow. An offer's lifecycle is driven entirely through
// conditional status transitions under row locks, so each transition
// happens exactly once.
type TradeServiceImpl struct {
	offerStore   ports.TradeOfferStore
	walletStore  ports.WalletStore
	rates        ports.RateResolver
	facilitation FacilitationPolicy
	transactor   ports.DBTransactor
	maxRetries   int
	log          zerolog.Logger
}

// NewTradeService creates a TradeServiceImpl.
func NewTradeService(
	offerStore ports.TradeOfferStore,
	walletStore ports.WalletStore,
	rates ports.RateResolver,
	facilitation FacilitationPolicy,
	transactor ports.DBTransactor,
	maxRetries int,
	log zerolog.Logger,
) *TradeServiceImpl {
	return &TradeServiceImpl{
		offerStore:   offerStore,
		walletStore:  walletStore,
		rates:        rates,
		facilitation: facilitation,
		transactor:   transactor,
		maxRetries:   maxRetries,
		log:          log,
	}
}

// CreateOffer escrows the offered amount and opens an ACTIVE offer.
func (s *TradeServiceImpl) CreateOffer(ctx context.Context, req ports.CreateOfferRequest) (*domain.TradeOffer, error) {
	if req.AmountOffered <= 0 || req.AmountRequested <= 0 {
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
	if !req.ExpiresAt.After(time.Now()) {
		return nil, apperror.Validation("expires_at must be in the future")
	}

	// Market rate snapshot, taken up front for savings display.
	marketRate, err := s.rates.Resolve(ctx, req.FromProgram, req.ToProgram)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		offer, err := s.createOnce(ctx, req, marketRate)
		if err == nil {
			return offer, nil
		}
		if !isRetryableTxErr(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperror.ErrConcurrencyConflict(lastErr)
}

func (s *TradeServiceImpl) createOnce(ctx context.Context, req ports.CreateOfferRequest, marketRate decimal.Decimal) (*domain.TradeOffer, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletStore.GetForUpdate(ctx, dbTx, req.CreatorID, req.FromProgram)
	if err != nil {
		return nil, storeErr("lock creator wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if wallet.Available() < req.AmountOffered {
		return nil, apperror.ErrInsufficientBalance()
	}

	// Escrow in the same atomic unit as the offer insert: a concurrent
	// conversion can never spend these points.
	if err := s.walletStore.UpdateBalances(ctx, dbTx, wallet.ID, wallet.Balance, wallet.Escrowed+req.AmountOffered); err != nil {
		return nil, storeErr("escrow offered amount", err)
	}

	now := time.Now().UTC()
	offer := &domain.TradeOffer{
		ID:              uuid.New(),
		CreatorID:       req.CreatorID,
		FromProgram:     req.FromProgram,
		ToProgram:       req.ToProgram,
		AmountOffered:   req.AmountOffered,
		AmountRequested: req.AmountRequested,
		CustomRate:      decimal.NewFromInt(req.AmountRequested).Div(decimal.NewFromInt(req.AmountOffered)),
		MarketRate:      marketRate,
		Status:          domain.OfferStatusActive,
		CreatedAt:       now,
		ExpiresAt:       req.ExpiresAt.UTC(),
	}
	if err := s.offerStore.Create(ctx, dbTx, offer); err != nil {
		return nil, storeErr("create offer", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storeErr("commit offer", err)
	}

	s.log.Info().
		Str("offer_id", offer.ID.String()).
		Str("creator_id", req.CreatorID.String()).
		Str("from", string(req.FromProgram)).
		Str("to", string(req.ToProgram)).
		Int64("offered", req.AmountOffered).
		Int64("requested", req.AmountRequested).
		Msg("trade offer created")

	return offer, nil
}

// AcceptOffer settles an ACTIVE offer into the acceptor's wallets.
func (s *TradeServiceImpl) AcceptOffer(ctx context.Context, offerID, acceptorID uuid.UUID) (*domain.TradeTransaction, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		trade, err := s.acceptOnce(ctx, offerID, acceptorID)
		if err == nil {
			return trade, nil
		}
		if !isRetryableTxErr(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperror.ErrConcurrencyConflict(lastErr)
}

func (s *TradeServiceImpl) acceptOnce(ctx context.Context, offerID, acceptorID uuid.UUID) (*domain.TradeTransaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	offer, err := s.offerStore.GetByIDForUpdate(ctx, dbTx, offerID)
	if err != nil {
		return nil, storeErr("lock offer", err)
	}
	if offer == nil {
		return nil, apperror.ErrNotFound("offer")
	}
	if !offer.IsActive() {
		return nil, apperror.ErrOfferNotActive()
	}
	now := time.Now().UTC()
	if offer.ExpiredAt(now) {
		// The sweep settles it; acceptance past the deadline is refused.
		return nil, apperror.ErrOfferExpired()
	}
	if offer.CreatorID == acceptorID {
		return nil, apperror.ErrSelfTrade()
	}

	// Four wallets move: creator gives offered points and receives the
	// requested ones, the acceptor mirrors. Locked in deterministic order.
	keys := sortWalletKeys([]walletKey{
		{UserID: offer.CreatorID, Program: offer.FromProgram},
		{UserID: offer.CreatorID, Program: offer.ToProgram},
		{UserID: acceptorID, Program: offer.FromProgram},
		{UserID: acceptorID, Program: offer.ToProgram},
	})
	wallets := make(map[walletKey]*domain.Wallet, len(keys))
	for _, k := range keys {
		w, err := s.walletStore.GetForUpdate(ctx, dbTx, k.UserID, k.Program)
		if err != nil {
			return nil, storeErr("lock wallet", err)
		}
		wallets[k] = w
	}

	creatorFrom := wallets[walletKey{offer.CreatorID, offer.FromProgram}]
	creatorTo := wallets[walletKey{offer.CreatorID, offer.ToProgram}]
	acceptorFrom := wallets[walletKey{acceptorID, offer.FromProgram}]
	acceptorTo := wallets[walletKey{acceptorID, offer.ToProgram}]

	if creatorFrom == nil {
		return nil, apperror.InternalError(errors.New("escrow wallet missing for active offer"))
	}
	if acceptorTo == nil || acceptorTo.Available() < offer.AmountRequested {
		return nil, apperror.ErrInsufficientBalance()
	}

	// Fee rate derives from the savings the acceptor realizes against the
	// freshest market view we have; the creation snapshot is the fallback
	// when the feed is unavailable at accept time.
	marketRate := offer.MarketRate
	if fresh, err := s.rates.Resolve(ctx, offer.FromProgram, offer.ToProgram); err == nil {
		marketRate = fresh
	} else {
		s.log.Warn().Err(err).Str("offer_id", offer.ID.String()).
			Msg("market rate unavailable at accept, using creation snapshot")
	}
	feeRate := s.facilitation.RateFor(offer.SavingsPctAt(marketRate))
	feeOffered := decimal.NewFromInt(offer.AmountOffered).Mul(feeRate).Floor().IntPart()
	feeRequested := decimal.NewFromInt(offer.AmountRequested).Mul(feeRate).Floor().IntPart()

	// Creator: escrow released and consumed in one move.
	if err := s.walletStore.UpdateBalances(ctx, dbTx, creatorFrom.ID,
		creatorFrom.Balance-offer.AmountOffered, creatorFrom.Escrowed-offer.AmountOffered); err != nil {
		return nil, storeErr("debit creator escrow", err)
	}
	if err := s.creditWallet(ctx, dbTx, creatorTo, offer.CreatorID, offer.ToProgram,
		offer.AmountRequested-feeRequested, now); err != nil {
		return nil, err
	}

	// Acceptor: pays the requested amount, receives the offered points net of fee.
	if err := s.walletStore.UpdateBalances(ctx, dbTx, acceptorTo.ID,
		acceptorTo.Balance-offer.AmountRequested, acceptorTo.Escrowed); err != nil {
		return nil, storeErr("debit acceptor", err)
	}
	if err := s.creditWallet(ctx, dbTx, acceptorFrom, acceptorID, offer.FromProgram,
		offer.AmountOffered-feeOffered, now); err != nil {
		return nil, err
	}

	ok, err := s.offerStore.TransitionStatus(ctx, dbTx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCompleted)
	if err != nil {
		return nil, storeErr("complete offer", err)
	}
	if !ok {
		return nil, apperror.ErrOfferNotActive()
	}

	trade := &domain.TradeTransaction{
		ID:              uuid.New(),
		OfferID:         offer.ID,
		SellerID:        offer.CreatorID,
		BuyerID:         acceptorID,
		AmountSold:      offer.AmountOffered,
		AmountBought:    offer.AmountRequested,
		FacilitationFee: feeOffered,
		FeeRate:         feeRate,
		CompletedAt:     now,
	}
	if err := s.offerStore.CreateTrade(ctx, dbTx, trade); err != nil {
		return nil, storeErr("record trade", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storeErr("commit trade", err)
	}

	s.log.Info().
		Str("trade_id", trade.ID.String()).
		Str("offer_id", offer.ID.String()).
		Str("buyer_id", acceptorID.String()).
		Int64("sold", trade.AmountSold).
		Int64("bought", trade.AmountBought).
		Str("fee_rate", feeRate.String()).
		Msg("trade offer accepted")

	return trade, nil
}

// creditWallet credits an existing wallet or lazily creates one.
func (s *TradeServiceImpl) creditWallet(ctx context.Context, dbTx pgx.Tx, wallet *domain.Wallet, userID uuid.UUID, program domain.Program, amount int64, now time.Time) error {
	if wallet != nil {
		if err := s.walletStore.UpdateBalances(ctx, dbTx, wallet.ID, wallet.Balance+amount, wallet.Escrowed); err != nil {
			return storeErr("credit wallet", err)
		}
		return nil
	}
	w := &domain.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Program:   program,
		Balance:   amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.walletStore.CreateInTx(ctx, dbTx, w); err != nil {
		return storeErr("create wallet", err)
	}
	return nil
}

// CancelOffer releases escrow and retires an ACTIVE offer. Creator-only.
func (s *TradeServiceImpl) CancelOffer(ctx context.Context, offerID, callerID uuid.UUID) error {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err := s.cancelOnce(ctx, offerID, callerID)
		if err == nil {
			return nil
		}
		if !isRetryableTxErr(err) {
			return err
		}
		lastErr = err
	}
	return apperror.ErrConcurrencyConflict(lastErr)
}

func (s *TradeServiceImpl) cancelOnce(ctx context.Context, offerID, callerID uuid.UUID) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	offer, err := s.offerStore.GetByIDForUpdate(ctx, dbTx, offerID)
	if err != nil {
		return storeErr("lock offer", err)
	}
	if offer == nil {
		return apperror.ErrNotFound("offer")
	}
	if offer.CreatorID != callerID {
		return apperror.ErrNotOfferCreator()
	}
	if !offer.IsActive() {
		return apperror.ErrOfferNotActive()
	}

	if err := s.releaseEscrow(ctx, dbTx, offer); err != nil {
		return err
	}

	ok, err := s.offerStore.TransitionStatus(ctx, dbTx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCancelled)
	if err != nil {
		return storeErr("cancel offer", err)
	}
	if !ok {
		return apperror.ErrOfferNotActive()
	}

	if err := dbTx.Commit(ctx); err != nil {
		return storeErr("commit cancel", err)
	}

	s.log.Info().
		Str("offer_id", offer.ID.String()).
		Msg("trade offer cancelled")

	return nil
}

// ListOffers returns open offers for the marketplace view.
func (s *TradeServiceImpl) ListOffers(ctx context.Context, limit int) ([]domain.TradeOffer, error) {
	offers, err := s.offerStore.ListActive(ctx, limit)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return offers, nil
}

// SweepExpired settles every ACTIVE offer past its deadline: escrow is
// released and the offer marked EXPIRED, each exactly once. Safe to invoke
// repeatedly; a second sweep finds nothing to release.
func (s *TradeServiceImpl) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, apperror.InternalError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	offers, err := s.offerStore.ListExpiredForUpdate(ctx, dbTx, now)
	if err != nil {
		return 0, storeErr("list expired offers", err)
	}

	expired := 0
	for i := range offers {
		offer := &offers[i]

		ok, err := s.offerStore.TransitionStatus(ctx, dbTx, offer.ID, domain.OfferStatusActive, domain.OfferStatusExpired)
		if err != nil {
			return 0, storeErr("expire offer", err)
		}
		if !ok {
			// Settled concurrently between list and transition.
			continue
		}
		if err := s.releaseEscrow(ctx, dbTx, offer); err != nil {
			return 0, err
		}
		expired++
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, storeErr("commit sweep", err)
	}

	if expired > 0 {
		s.log.Info().Int("offers_expired", expired).Msg("expired offers swept")
	}

	return expired, nil
}

func (s *TradeServiceImpl) releaseEscrow(ctx context.Context, dbTx pgx.Tx, offer *domain.TradeOffer) error {
	wallet, err := s.walletStore.GetForUpdate(ctx, dbTx, offer.CreatorID, offer.FromProgram)
	if err != nil {
		return storeErr("lock escrow wallet", err)
	}
	if wallet == nil {
		return apperror.InternalError(errors.New("escrow wallet missing for active offer"))
	}
	if err := s.walletStore.UpdateBalances(ctx, dbTx, wallet.ID, wallet.Balance, wallet.Escrowed-offer.AmountOffered); err != nil {
		return storeErr("release escrow", err)
	}
	return nil
}
