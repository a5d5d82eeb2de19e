package service

import (
	"context"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RateResolverImpl implements ports.RateResolver. It resolves directly when
// a pairing exists, otherwise composes a two-hop path through the hub
// currency. Snapshots older than the staleness window are refused.
type RateResolverImpl struct {
	source    ports.RateSource
	cache     ports.RateCache // nil = caching disabled
	staleness time.Duration
	cacheTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewRateResolver creates a RateResolverImpl.
func NewRateResolver(
	source ports.RateSource,
	cache ports.RateCache,
	staleness time.Duration,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *RateResolverImpl {
	return &RateResolverImpl{
		source:    source,
		cache:     cache,
		staleness: staleness,
		cacheTTL:  cacheTTL,
		now:       time.Now,
		log:       log,
	}
}

// Resolve returns the rate converting from -> to.
func (r *RateResolverImpl) Resolve(ctx context.Context, from, to domain.Program) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if r.cache != nil {
		rate, hit, err := r.cache.Get(ctx, from, to)
		if err != nil {
			r.log.Warn().Err(err).Msg("rate cache read failed, falling through to feed")
		} else if hit {
			return rate, nil
		}
	}

	rate, err := r.resolveFromFeed(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, from, to, rate, r.cacheTTL); err != nil {
			r.log.Warn().Err(err).Msg("rate cache write failed")
		}
	}

	return rate, nil
}

func (r *RateResolverImpl) resolveFromFeed(ctx context.Context, from, to domain.Program) (decimal.Decimal, error) {
	direct, err := r.freshRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if direct != nil {
		return direct.Rate, nil
	}

	// No direct pairing: compose rate(from, HUB) * rate(HUB, to).
	inbound, err := r.freshRate(ctx, from, domain.HubProgram)
	if err != nil {
		return decimal.Zero, err
	}
	outbound, err := r.freshRate(ctx, domain.HubProgram, to)
	if err != nil {
		return decimal.Zero, err
	}
	if inbound == nil || outbound == nil {
		return decimal.Zero, apperror.ErrRateUnavailable(from.String(), to.String())
	}

	return inbound.Rate.Mul(outbound.Rate), nil
}

// freshRate fetches a direct rate and enforces the staleness window.
// Returns nil, nil when no pairing exists; an outdated snapshot is an
// error rather than a silent fallback.
func (r *RateResolverImpl) freshRate(ctx context.Context, from, to domain.Program) (*domain.ExchangeRate, error) {
	rate, err := r.source.GetRate(ctx, from, to)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if rate == nil {
		return nil, nil
	}
	if rate.StaleAt(r.staleness, r.now()) {
		return nil, apperror.ErrRateStale(from.String(), to.String())
	}
	if !rate.Rate.IsPositive() {
		return nil, apperror.ErrRateUnavailable(from.String(), to.String())
	}
	return rate, nil
}
