package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Wallet Store ---

type walletKey struct {
	userID  uuid.UUID
	program domain.Program
}

type inMemoryWalletStore struct {
	mu      sync.RWMutex
	wallets map[walletKey]*domain.Wallet
}

func newInMemoryWalletStore() *inMemoryWalletStore {
	return &inMemoryWalletStore{wallets: make(map[walletKey]*domain.Wallet)}
}

func (r *inMemoryWalletStore) Create(ctx context.Context, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := walletKey{wallet.UserID, wallet.Program}
	if _, exists := r.wallets[key]; exists {
		return fmt.Errorf("wallet already exists for %s/%s", wallet.UserID, wallet.Program)
	}
	cp := *wallet
	r.wallets[key] = &cp
	return nil
}

func (r *inMemoryWalletStore) CreateInTx(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	return r.Create(ctx, wallet)
}

func (r *inMemoryWalletStore) Get(ctx context.Context, userID uuid.UUID, program domain.Program) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[walletKey{userID, program}]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for key, w := range r.wallets {
		if key.userID == userID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Program < result[j].Program })
	return result, nil
}

func (r *inMemoryWalletStore) GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID, program domain.Program) (*domain.Wallet, error) {
	return r.Get(ctx, userID, program)
}

func (r *inMemoryWalletStore) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, escrowed int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.ID == walletID {
			w.Balance = balance
			w.Escrowed = escrowed
			w.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("wallet %s not found", walletID)
}

// --- In-Memory Transaction Log ---

type inMemoryTransactionLog struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

func newInMemoryTransactionLog() *inMemoryTransactionLog {
	return &inMemoryTransactionLog{}
}

func (r *inMemoryTransactionLog) Append(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, *txn)
	return nil
}

func (r *inMemoryTransactionLog) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for i := len(r.transactions) - 1; i >= 0 && len(result) < limit; i-- {
		if r.transactions[i].UserID == userID {
			result = append(result, r.transactions[i])
		}
	}
	return result, nil
}

// --- In-Memory User Stats Store ---

type inMemoryStatsStore struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]*domain.UserStats
}

func newInMemoryStatsStore() *inMemoryStatsStore {
	return &inMemoryStatsStore{stats: make(map[uuid.UUID]*domain.UserStats)}
}

func (r *inMemoryStatsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stats[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemoryStatsStore) GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.UserStats, error) {
	return r.Get(ctx, userID)
}

func (r *inMemoryStatsStore) Upsert(ctx context.Context, tx pgx.Tx, stats *domain.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *stats
	r.stats[stats.UserID] = &cp
	return nil
}

func (r *inMemoryStatsStore) ResetMonthly(ctx context.Context, periodStart time.Time, baseTier domain.Tier) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	for _, s := range r.stats {
		if s.PeriodStart.Before(periodStart) {
			s.MonthlyPoints = 0
			s.Tier = baseTier
			s.PeriodStart = periodStart
			affected++
		}
	}
	return affected, nil
}

// --- In-Memory Trade Offer Store ---

type inMemoryOfferStore struct {
	mu     sync.RWMutex
	offers map[uuid.UUID]*domain.TradeOffer
	trades []domain.TradeTransaction
}

func newInMemoryOfferStore() *inMemoryOfferStore {
	return &inMemoryOfferStore{offers: make(map[uuid.UUID]*domain.TradeOffer)}
}

func (r *inMemoryOfferStore) Create(ctx context.Context, tx pgx.Tx, offer *domain.TradeOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *offer
	r.offers[offer.ID] = &cp
	return nil
}

func (r *inMemoryOfferStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *inMemoryOfferStore) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.TradeOffer, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryOfferStore) ListActive(ctx context.Context, limit int) ([]domain.TradeOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now().UTC()
	var result []domain.TradeOffer
	for _, o := range r.offers {
		if o.Status == domain.OfferStatusActive && o.ExpiresAt.After(now) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *inMemoryOfferStore) ListExpiredForUpdate(ctx context.Context, tx pgx.Tx, now time.Time) ([]domain.TradeOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.TradeOffer
	for _, o := range r.offers {
		if o.Status == domain.OfferStatusActive && !o.ExpiresAt.After(now) {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *inMemoryOfferStore) TransitionStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.OfferStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *inMemoryOfferStore) CreateTrade(ctx context.Context, tx pgx.Tx, trade *domain.TradeTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trades = append(r.trades, *trade)
	return nil
}

// --- In-Memory Rate Feed ---

type ratePair struct {
	from domain.Program
	to   domain.Program
}

type inMemoryRateFeed struct {
	mu    sync.RWMutex
	rates map[ratePair]*domain.ExchangeRate
}

func newInMemoryRateFeed() *inMemoryRateFeed {
	return &inMemoryRateFeed{rates: make(map[ratePair]*domain.ExchangeRate)}
}

func (r *inMemoryRateFeed) GetRate(ctx context.Context, from, to domain.Program) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rate, ok := r.rates[ratePair{from, to}]
	if !ok {
		return nil, nil
	}
	cp := *rate
	return &cp, nil
}

func (r *inMemoryRateFeed) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rate
	r.rates[ratePair{rate.FromProgram, rate.ToProgram}] = &cp
	return nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes transaction blocks behind one mutex, which
// stands in for the row locks the postgres transactor takes. Commit and
// Rollback both release exactly once.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: &t.mu}, nil
}

type serialTx struct {
	release *sync.Mutex
	once    sync.Once
}

func (t *serialTx) done() {
	t.once.Do(func() { t.release.Unlock() })
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }

var (
	_ ports.WalletStore     = (*inMemoryWalletStore)(nil)
	_ ports.TransactionLog  = (*inMemoryTransactionLog)(nil)
	_ ports.UserStatsStore  = (*inMemoryStatsStore)(nil)
	_ ports.TradeOfferStore = (*inMemoryOfferStore)(nil)
	_ ports.RateSource      = (*inMemoryRateFeed)(nil)
	_ ports.RateFeedStore   = (*inMemoryRateFeed)(nil)
	_ ports.DBTransactor    = (*inMemoryTransactor)(nil)
)
