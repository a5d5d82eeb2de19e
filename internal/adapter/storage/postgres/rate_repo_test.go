package postgres

import (
	"context"
	"testing"
	"time"

	"points-exchange/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateRepo_GetRate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepo(mock)
	asOf := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows([]string{"from_program", "to_program", "rate", "as_of"}).
		AddRow(domain.ProgramQantas, domain.ProgramXPoints, decimal.RequireFromString("0.5"), asOf)

	mock.ExpectQuery("SELECT .+ FROM rates").
		WithArgs(domain.ProgramQantas, domain.ProgramXPoints).
		WillReturnRows(rows)

	rate, err := repo.GetRate(context.Background(), domain.ProgramQantas, domain.ProgramXPoints)
	require.NoError(t, err)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, asOf, rate.AsOf)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateRepo_GetRate_NoPairing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM rates").
		WithArgs(domain.ProgramQantas, domain.ProgramVelocity).
		WillReturnRows(pgxmock.NewRows([]string{"from_program", "to_program", "rate", "as_of"}))

	rate, err := repo.GetRate(context.Background(), domain.ProgramQantas, domain.ProgramVelocity)
	require.NoError(t, err)
	assert.Nil(t, rate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepo(mock)
	rate := &domain.ExchangeRate{
		FromProgram: domain.ProgramXPoints,
		ToProgram:   domain.ProgramVelocity,
		Rate:        decimal.RequireFromString("1.2"),
		AsOf:        time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO rates").
		WithArgs(rate.FromProgram, rate.ToProgram, rate.Rate, rate.AsOf).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), rate)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
