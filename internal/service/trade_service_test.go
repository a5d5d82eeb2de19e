package service

import (
	"context"
	"testing"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/internal/core/ports/mocks"
	"points-exchange/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type tradeTestDeps struct {
	svc         *TradeServiceImpl
	offerStore  *mocks.MockTradeOfferStore
	walletStore *mocks.MockWalletStore
	rates       *mocks.MockRateResolver
	transactor  *mocks.MockDBTransactor
	ctrl        *gomock.Controller
}

func defaultFacilitationPolicy() FacilitationPolicy {
	return FacilitationPolicy{
		SavingsShare: decimal.RequireFromString("0.10"),
		MinPct:       decimal.RequireFromString("0.005"),
		MaxPct:       decimal.RequireFromString("0.05"),
	}
}

func setupTradeService(t *testing.T) *tradeTestDeps {
	ctrl := gomock.NewController(t)
	d := &tradeTestDeps{
		offerStore:  mocks.NewMockTradeOfferStore(ctrl),
		walletStore: mocks.NewMockWalletStore(ctrl),
		rates:       mocks.NewMockRateResolver(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewTradeService(
		d.offerStore, d.walletStore, d.rates,
		defaultFacilitationPolicy(),
		d.transactor, 2, zerolog.Nop(),
	)
	return d
}

func TestFacilitationPolicy_RateFor(t *testing.T) {
	p := defaultFacilitationPolicy()

	tests := []struct {
		name    string
		savings string
		want    string
	}{
		{"no savings clamps to floor", "0", "0.005"},
		{"below floor clamps up", "0.01", "0.005"},
		{"proportional share within band", "0.20", "0.02"},
		{"large savings clamps to ceiling", "0.80", "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.RateFor(decimal.RequireFromString(tt.savings))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestTradeService_CreateOffer_Success(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	tx := &mockTx{}

	wallet := &domain.Wallet{
		ID:      uuid.New(),
		UserID:  creatorID,
		Program: domain.ProgramQantas,
		Balance: 60_000,
	}

	req := ports.CreateOfferRequest{
		CreatorID:       creatorID,
		FromProgram:     domain.ProgramQantas,
		ToProgram:       domain.ProgramXPoints,
		AmountOffered:   50_000,
		AmountRequested: 20_000,
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).
		Return(wallet, nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, wallet.ID, int64(60_000), int64(50_000)).
		Return(nil)
	d.offerStore.EXPECT().
		Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, o *domain.TradeOffer) error {
			assert.Equal(t, domain.OfferStatusActive, o.Status)
			assert.True(t, o.CustomRate.Equal(decimal.RequireFromString("0.4")))
			assert.True(t, o.MarketRate.Equal(decimal.RequireFromString("0.5")))
			return nil
		})

	offer, err := d.svc.CreateOffer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), offer.AmountOffered)
	assert.Equal(t, int64(20_000), offer.AmountRequested)
}

func TestTradeService_CreateOffer_InsufficientAvailable(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	tx := &mockTx{}

	// A second offer cannot re-pledge points already escrowed by the first.
	wallet := &domain.Wallet{
		ID:       uuid.New(),
		UserID:   creatorID,
		Program:  domain.ProgramQantas,
		Balance:  60_000,
		Escrowed: 50_000,
	}

	req := ports.CreateOfferRequest{
		CreatorID:       creatorID,
		FromProgram:     domain.ProgramQantas,
		ToProgram:       domain.ProgramXPoints,
		AmountOffered:   20_000,
		AmountRequested: 8_000,
		ExpiresAt:       time.Now().Add(time.Hour),
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).
		Return(wallet, nil)

	_, err := d.svc.CreateOffer(ctx, req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAL_001", appErr.Code)
}

func TestTradeService_CreateOffer_Validation(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	base := ports.CreateOfferRequest{
		CreatorID:       creatorID,
		FromProgram:     domain.ProgramQantas,
		ToProgram:       domain.ProgramXPoints,
		AmountOffered:   1_000,
		AmountRequested: 400,
		ExpiresAt:       time.Now().Add(time.Hour),
	}

	t.Run("expiry in the past", func(t *testing.T) {
		req := base
		req.ExpiresAt = time.Now().Add(-time.Minute)
		_, err := d.svc.CreateOffer(ctx, req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VAL_001", appErr.Code)
	})

	t.Run("zero amount offered", func(t *testing.T) {
		req := base
		req.AmountOffered = 0
		_, err := d.svc.CreateOffer(ctx, req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VAL_004", appErr.Code)
	})

	t.Run("same program both sides", func(t *testing.T) {
		req := base
		req.ToProgram = req.FromProgram
		_, err := d.svc.CreateOffer(ctx, req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VAL_003", appErr.Code)
	})
}

func TestTradeService_CreateOffer_RequiresMarketRate(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.CreateOfferRequest{
		CreatorID:       uuid.New(),
		FromProgram:     domain.ProgramQantas,
		ToProgram:       domain.ProgramXPoints,
		AmountOffered:   1_000,
		AmountRequested: 400,
		ExpiresAt:       time.Now().Add(time.Hour),
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.Zero, apperror.ErrRateUnavailable("QANTAS", "XPOINTS"))

	_, err := d.svc.CreateOffer(ctx, req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RATE_001", appErr.Code)
}

func activeOffer(creatorID uuid.UUID) *domain.TradeOffer {
	return &domain.TradeOffer{
		ID:              uuid.New(),
		CreatorID:       creatorID,
		FromProgram:     domain.ProgramQantas,
		ToProgram:       domain.ProgramXPoints,
		AmountOffered:   50_000,
		AmountRequested: 20_000,
		CustomRate:      decimal.RequireFromString("0.4"),
		MarketRate:      decimal.RequireFromString("0.5"),
		Status:          domain.OfferStatusActive,
		CreatedAt:       time.Now().Add(-time.Hour),
		ExpiresAt:       time.Now().Add(time.Hour),
	}
}

func TestTradeService_AcceptOffer_Success(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	acceptorID := uuid.New()
	tx := &mockTx{}
	offer := activeOffer(creatorID)

	creatorFrom := &domain.Wallet{
		ID: uuid.New(), UserID: creatorID, Program: domain.ProgramQantas,
		Balance: 60_000, Escrowed: 50_000,
	}
	creatorTo := &domain.Wallet{
		ID: uuid.New(), UserID: creatorID, Program: domain.ProgramXPoints,
		Balance: 100,
	}
	acceptorTo := &domain.Wallet{
		ID: uuid.New(), UserID: acceptorID, Program: domain.ProgramXPoints,
		Balance: 30_000,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).
		Return(creatorFrom, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramXPoints).
		Return(creatorTo, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, acceptorID, domain.ProgramQantas).
		Return(nil, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, acceptorID, domain.ProgramXPoints).
		Return(acceptorTo, nil)
	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)

	// Market cost of 50000 QANTAS is 25000 XPOINTS; asking 20000 saves 20%.
	// Fee rate 10% of savings = 2%: 1000 on the offered leg, 400 on the
	// requested leg.
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, creatorFrom.ID, int64(10_000), int64(0)).
		Return(nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, creatorTo.ID, int64(19_700), int64(0)).
		Return(nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, acceptorTo.ID, int64(10_000), int64(0)).
		Return(nil)
	d.walletStore.EXPECT().
		CreateInTx(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
			assert.Equal(t, acceptorID, w.UserID)
			assert.Equal(t, domain.ProgramQantas, w.Program)
			assert.Equal(t, int64(49_000), w.Balance)
			return nil
		})
	d.offerStore.EXPECT().
		TransitionStatus(ctx, tx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCompleted).
		Return(true, nil)
	d.offerStore.EXPECT().
		CreateTrade(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, tr *domain.TradeTransaction) error {
			assert.Equal(t, offer.ID, tr.OfferID)
			assert.Equal(t, creatorID, tr.SellerID)
			assert.Equal(t, acceptorID, tr.BuyerID)
			return nil
		})

	trade, err := d.svc.AcceptOffer(ctx, offer.ID, acceptorID)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), trade.AmountSold)
	assert.Equal(t, int64(20_000), trade.AmountBought)
	assert.Equal(t, int64(1_000), trade.FacilitationFee)
	assert.True(t, trade.FeeRate.Equal(decimal.RequireFromString("0.02")))
}

func TestTradeService_AcceptOffer_LifecycleGuards(t *testing.T) {
	creatorID := uuid.New()
	acceptorID := uuid.New()

	tests := []struct {
		name     string
		mutate   func(o *domain.TradeOffer)
		caller   uuid.UUID
		wantCode string
	}{
		{
			name:     "already completed",
			mutate:   func(o *domain.TradeOffer) { o.Status = domain.OfferStatusCompleted },
			caller:   acceptorID,
			wantCode: "TRD_001",
		},
		{
			name:     "cancelled",
			mutate:   func(o *domain.TradeOffer) { o.Status = domain.OfferStatusCancelled },
			caller:   acceptorID,
			wantCode: "TRD_001",
		},
		{
			name:     "deadline passed but sweep not yet run",
			mutate:   func(o *domain.TradeOffer) { o.ExpiresAt = time.Now().Add(-time.Minute) },
			caller:   acceptorID,
			wantCode: "TRD_002",
		},
		{
			name:     "creator accepting own offer",
			mutate:   func(o *domain.TradeOffer) {},
			caller:   creatorID,
			wantCode: "TRD_003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupTradeService(t)
			defer d.ctrl.Finish()

			ctx := context.Background()
			tx := &mockTx{}
			offer := activeOffer(creatorID)
			tt.mutate(offer)

			d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
			d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)

			_, err := d.svc.AcceptOffer(ctx, offer.ID, tt.caller)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestTradeService_AcceptOffer_NotFound(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	offerID := uuid.New()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offerID).Return(nil, nil)

	_, err := d.svc.AcceptOffer(ctx, offerID, uuid.New())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NF_001", appErr.Code)
}

func TestTradeService_AcceptOffer_AcceptorCannotPay(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	acceptorID := uuid.New()
	tx := &mockTx{}
	offer := activeOffer(creatorID)

	creatorFrom := &domain.Wallet{
		ID: uuid.New(), UserID: creatorID, Program: domain.ProgramQantas,
		Balance: 60_000, Escrowed: 50_000,
	}
	acceptorTo := &domain.Wallet{
		ID: uuid.New(), UserID: acceptorID, Program: domain.ProgramXPoints,
		Balance: 19_999,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).
		Return(creatorFrom, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramXPoints).
		Return(nil, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, acceptorID, domain.ProgramQantas).
		Return(nil, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, acceptorID, domain.ProgramXPoints).
		Return(acceptorTo, nil)

	// No balance moves and the offer stays ACTIVE for the next taker.
	_, err := d.svc.AcceptOffer(ctx, offer.ID, acceptorID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAL_001", appErr.Code)
}

func TestTradeService_AcceptOffer_LostTransitionRace(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	acceptorID := uuid.New()
	tx := &mockTx{}
	offer := activeOffer(creatorID)

	creatorFrom := &domain.Wallet{
		ID: uuid.New(), UserID: creatorID, Program: domain.ProgramQantas,
		Balance: 60_000, Escrowed: 50_000,
	}
	acceptorTo := &domain.Wallet{
		ID: uuid.New(), UserID: acceptorID, Program: domain.ProgramXPoints,
		Balance: 30_000,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).Return(creatorFrom, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, creatorID, domain.ProgramXPoints).Return(nil, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, acceptorID, domain.ProgramQantas).Return(nil, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, acceptorID, domain.ProgramXPoints).Return(acceptorTo, nil)
	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.walletStore.EXPECT().UpdateBalances(ctx, tx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.walletStore.EXPECT().CreateInTx(ctx, tx, gomock.Any()).Return(nil).AnyTimes()
	d.offerStore.EXPECT().
		TransitionStatus(ctx, tx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCompleted).
		Return(false, nil)

	// The conditional update found the row no longer ACTIVE; everything in
	// the transaction rolls back.
	_, err := d.svc.AcceptOffer(ctx, offer.ID, acceptorID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRD_001", appErr.Code)
}

func TestTradeService_AcceptOffer_FeedDownFallsBackToSnapshot(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	acceptorID := uuid.New()
	tx := &mockTx{}
	offer := activeOffer(creatorID)

	creatorFrom := &domain.Wallet{
		ID: uuid.New(), UserID: creatorID, Program: domain.ProgramQantas,
		Balance: 60_000, Escrowed: 50_000,
	}
	acceptorTo := &domain.Wallet{
		ID: uuid.New(), UserID: acceptorID, Program: domain.ProgramXPoints,
		Balance: 30_000,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).Return(creatorFrom, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, creatorID, domain.ProgramXPoints).Return(nil, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, acceptorID, domain.ProgramQantas).Return(nil, nil)
	d.walletStore.EXPECT().GetForUpdate(ctx, tx, acceptorID, domain.ProgramXPoints).Return(acceptorTo, nil)
	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.Zero, apperror.ErrRateUnavailable("QANTAS", "XPOINTS"))
	d.walletStore.EXPECT().UpdateBalances(ctx, tx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.walletStore.EXPECT().CreateInTx(ctx, tx, gomock.Any()).Return(nil).Times(2)
	d.offerStore.EXPECT().
		TransitionStatus(ctx, tx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCompleted).
		Return(true, nil)
	d.offerStore.EXPECT().CreateTrade(ctx, tx, gomock.Any()).Return(nil)

	// Creation snapshot (0.5) yields the same 20% savings, so the fee
	// rate is unchanged.
	trade, err := d.svc.AcceptOffer(ctx, offer.ID, acceptorID)
	require.NoError(t, err)
	assert.True(t, trade.FeeRate.Equal(decimal.RequireFromString("0.02")))
}

func TestTradeService_CancelOffer_Success(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	tx := &mockTx{}
	offer := activeOffer(creatorID)

	escrowWallet := &domain.Wallet{
		ID: uuid.New(), UserID: creatorID, Program: domain.ProgramQantas,
		Balance: 60_000, Escrowed: 50_000,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorID, domain.ProgramQantas).
		Return(escrowWallet, nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, escrowWallet.ID, int64(60_000), int64(0)).
		Return(nil)
	d.offerStore.EXPECT().
		TransitionStatus(ctx, tx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCancelled).
		Return(true, nil)

	require.NoError(t, d.svc.CancelOffer(ctx, offer.ID, creatorID))
}

func TestTradeService_CancelOffer_OnlyCreatorMayCancel(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	offer := activeOffer(uuid.New())

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)

	err := d.svc.CancelOffer(ctx, offer.ID, uuid.New())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTHZ_001", appErr.Code)
}

func TestTradeService_CancelOffer_NotActive(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	tx := &mockTx{}
	offer := activeOffer(creatorID)
	offer.Status = domain.OfferStatusCompleted

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().GetByIDForUpdate(ctx, tx, offer.ID).Return(offer, nil)

	err := d.svc.CancelOffer(ctx, offer.ID, creatorID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRD_001", appErr.Code)
}

func TestTradeService_SweepExpired(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	now := time.Now()
	tx := &mockTx{}

	creatorA := uuid.New()
	creatorB := uuid.New()
	offerA := *activeOffer(creatorA)
	offerB := *activeOffer(creatorB)

	walletA := &domain.Wallet{
		ID: uuid.New(), UserID: creatorA, Program: domain.ProgramQantas,
		Balance: 60_000, Escrowed: 50_000,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.offerStore.EXPECT().
		ListExpiredForUpdate(ctx, tx, now).
		Return([]domain.TradeOffer{offerA, offerB}, nil)

	// Offer A expires cleanly; offer B was settled between list and
	// transition, so its escrow is left alone.
	d.offerStore.EXPECT().
		TransitionStatus(ctx, tx, offerA.ID, domain.OfferStatusActive, domain.OfferStatusExpired).
		Return(true, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, creatorA, domain.ProgramQantas).
		Return(walletA, nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, walletA.ID, int64(60_000), int64(0)).
		Return(nil)
	d.offerStore.EXPECT().
		TransitionStatus(ctx, tx, offerB.ID, domain.OfferStatusActive, domain.OfferStatusExpired).
		Return(false, nil)

	expired, err := d.svc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestTradeService_ListOffers(t *testing.T) {
	d := setupTradeService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	offers := []domain.TradeOffer{*activeOffer(uuid.New())}

	d.offerStore.EXPECT().ListActive(ctx, 50).Return(offers, nil)

	got, err := d.svc.ListOffers(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
