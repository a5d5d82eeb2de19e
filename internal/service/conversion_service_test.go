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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

type conversionTestDeps struct {
	svc         *ConversionServiceImpl
	walletStore *mocks.MockWalletStore
	txLog       *mocks.MockTransactionLog
	statsStore  *mocks.MockUserStatsStore
	rates       *mocks.MockRateResolver
	transactor  *mocks.MockDBTransactor
	ctrl        *gomock.Controller
}

func setupConversionService(t *testing.T) *conversionTestDeps {
	ctrl := gomock.NewController(t)
	d := &conversionTestDeps{
		walletStore: mocks.NewMockWalletStore(ctrl),
		txLog:       mocks.NewMockTransactionLog(ctrl),
		statsStore:  mocks.NewMockUserStatsStore(ctrl),
		rates:       mocks.NewMockRateResolver(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		ctrl:        ctrl,
	}
	policies := domain.DefaultTierPolicies()
	d.svc = NewConversionService(
		d.walletStore, d.txLog, d.statsStore, d.rates,
		NewFeeCalculator(policies), policies,
		d.transactor, 2, zerolog.Nop(),
	)
	return d
}

func TestConversionService_Convert_Success(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	source := &domain.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Program: domain.ProgramQantas,
		Balance: 20_000,
	}
	dest := &domain.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Program: domain.ProgramXPoints,
		Balance: 1_000,
	}

	req := ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.ProgramQantas,
		ToProgram:   domain.ProgramXPoints,
		Amount:      12_000,
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramQantas).
		Return(source, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramXPoints).
		Return(dest, nil)
	d.statsStore.EXPECT().GetForUpdate(ctx, tx, userID).Return(nil, nil)

	// 12000 over a 10000 allowance: 2000 excess at 0.5% = 10 fee.
	// Destination credit floors (12000 - 10) * 0.5 = 5995.
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, source.ID, int64(8_000), int64(0)).
		Return(nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, dest.ID, int64(6_995), int64(0)).
		Return(nil)

	var recorded *domain.Transaction
	d.txLog.EXPECT().
		Append(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
			recorded = txn
			return nil
		})

	var savedStats *domain.UserStats
	d.statsStore.EXPECT().
		Upsert(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, stats *domain.UserStats) error {
			savedStats = stats
			return nil
		})

	txn, err := d.svc.Convert(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, int64(12_000), txn.AmountFrom)
	assert.Equal(t, int64(5_995), txn.AmountTo)
	assert.Equal(t, int64(10), txn.FeeApplied)
	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	assert.Same(t, recorded, txn)

	require.NotNil(t, savedStats)
	assert.Equal(t, int64(12_000), savedStats.MonthlyPoints)
	assert.Equal(t, int64(10), savedStats.FeesPaid)
	assert.Equal(t, domain.TierSilver, savedStats.Tier)
}

func TestConversionService_Convert_CreatesDestinationWallet(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	source := &domain.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Program: domain.ProgramVelocity,
		Balance: 5_000,
	}

	req := ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.ProgramVelocity,
		ToProgram:   domain.ProgramXPoints,
		Amount:      4_000,
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramVelocity, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.4"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramVelocity).
		Return(source, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramXPoints).
		Return(nil, nil)
	d.statsStore.EXPECT().GetForUpdate(ctx, tx, userID).Return(nil, nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, source.ID, int64(1_000), int64(0)).
		Return(nil)
	d.walletStore.EXPECT().
		CreateInTx(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
			assert.Equal(t, domain.ProgramXPoints, w.Program)
			assert.Equal(t, int64(1_600), w.Balance) // 4000 * 0.4, under allowance
			return nil
		})
	d.txLog.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)
	d.statsStore.EXPECT().Upsert(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.Convert(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), txn.FeeApplied)
	assert.Equal(t, int64(1_600), txn.AmountTo)
}

func TestConversionService_Convert_Validation(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name     string
		req      ports.ConvertRequest
		wantCode string
	}{
		{
			name:     "non-positive amount",
			req:      ports.ConvertRequest{UserID: userID, FromProgram: domain.ProgramQantas, ToProgram: domain.ProgramXPoints, Amount: 0},
			wantCode: "VAL_004",
		},
		{
			name:     "unknown source program",
			req:      ports.ConvertRequest{UserID: userID, FromProgram: "MARRIOTT", ToProgram: domain.ProgramXPoints, Amount: 100},
			wantCode: "VAL_002",
		},
		{
			name:     "unknown destination program",
			req:      ports.ConvertRequest{UserID: userID, FromProgram: domain.ProgramQantas, ToProgram: "qantas", Amount: 100},
			wantCode: "VAL_002",
		},
		{
			name:     "same program both sides",
			req:      ports.ConvertRequest{UserID: userID, FromProgram: domain.ProgramQantas, ToProgram: domain.ProgramQantas, Amount: 100},
			wantCode: "VAL_003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.svc.Convert(ctx, tt.req)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestConversionService_Convert_RateErrorPropagates(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.ConvertRequest{
		UserID:      uuid.New(),
		FromProgram: domain.ProgramQantas,
		ToProgram:   domain.ProgramVelocity,
		Amount:      1_000,
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramVelocity).
		Return(decimal.Zero, apperror.ErrRateUnavailable("QANTAS", "VELOCITY"))

	_, err := d.svc.Convert(ctx, req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RATE_001", appErr.Code)
}

func TestConversionService_Convert_SourceWalletMissing(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	req := ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.ProgramQantas,
		ToProgram:   domain.ProgramXPoints,
		Amount:      1_000,
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramQantas).
		Return(nil, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramXPoints).
		Return(nil, nil)

	_, err := d.svc.Convert(ctx, req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NF_001", appErr.Code)
}

func TestConversionService_Convert_EscrowedPointsNotSpendable(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	// 12000 on the books but 5000 escrowed behind an open offer.
	source := &domain.Wallet{
		ID:       uuid.New(),
		UserID:   userID,
		Program:  domain.ProgramQantas,
		Balance:  12_000,
		Escrowed: 5_000,
	}

	req := ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.ProgramQantas,
		ToProgram:   domain.ProgramXPoints,
		Amount:      8_000,
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramQantas).
		Return(source, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramXPoints).
		Return(nil, nil)

	_, err := d.svc.Convert(ctx, req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAL_001", appErr.Code)
}

func TestConversionService_Convert_StaleStatsRolledOverBeforeFee(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	source := &domain.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Program: domain.ProgramQantas,
		Balance: 10_000,
	}

	req := ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.ProgramQantas,
		ToProgram:   domain.ProgramXPoints,
		Amount:      5_000,
	}

	// Last month's volume would have pushed this over the allowance; after
	// rollover the conversion is fee-free again.
	staleStats := &domain.UserStats{
		UserID:        userID,
		Tier:          domain.TierGold,
		MonthlyPoints: 90_000,
		PeriodStart:   domain.MonthStart(time.Now().AddDate(0, -1, 0)),
	}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramQantas).
		Return(source, nil)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramXPoints).
		Return(nil, nil)
	d.statsStore.EXPECT().GetForUpdate(ctx, tx, userID).Return(staleStats, nil)
	d.walletStore.EXPECT().
		UpdateBalances(ctx, tx, source.ID, int64(5_000), int64(0)).
		Return(nil)
	d.walletStore.EXPECT().CreateInTx(ctx, tx, gomock.Any()).Return(nil)
	d.txLog.EXPECT().Append(ctx, tx, gomock.Any()).Return(nil)

	var savedStats *domain.UserStats
	d.statsStore.EXPECT().
		Upsert(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, stats *domain.UserStats) error {
			savedStats = stats
			return nil
		})

	txn, err := d.svc.Convert(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), txn.FeeApplied)

	require.NotNil(t, savedStats)
	assert.Equal(t, int64(5_000), savedStats.MonthlyPoints)
	assert.Equal(t, domain.TierStandard, savedStats.Tier)
}

func TestConversionService_Convert_RetriesExhaustedOnLockConflict(t *testing.T) {
	d := setupConversionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	req := ports.ConvertRequest{
		UserID:      userID,
		FromProgram: domain.ProgramQantas,
		ToProgram:   domain.ProgramXPoints,
		Amount:      1_000,
	}

	lockErr := &pgconn.PgError{Code: "55P03"}

	d.rates.EXPECT().
		Resolve(ctx, domain.ProgramQantas, domain.ProgramXPoints).
		Return(decimal.RequireFromString("0.5"), nil)
	// maxRetries=2 means three attempts before giving up.
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil).Times(3)
	d.walletStore.EXPECT().
		GetForUpdate(ctx, tx, userID, domain.ProgramQantas).
		Return(nil, lockErr).
		Times(3)

	_, err := d.svc.Convert(ctx, req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONC_001", appErr.Code)
	assert.True(t, apperror.IsRetryable(err))
}
