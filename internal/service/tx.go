package service

import (
	"errors"
	"fmt"
	"sort"

	"points-exchange/internal/core/domain"
	"points-exchange/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// walletKey identifies one (user, program) wallet for lock ordering.
type walletKey struct {
	UserID  uuid.UUID
	Program domain.Program
}

func (k walletKey) String() string {
	return k.UserID.String() + "/" + string(k.Program)
}

// sortWalletKeys orders wallet keys deterministically so every operation
// acquires row locks in the same sequence and cannot deadlock.
func sortWalletKeys(keys []walletKey) []walletKey {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// isRetryableTxErr recognizes transient PostgreSQL failures: serialization
// conflicts, deadlocks, and lock timeouts.
func isRetryableTxErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// storeErr classifies a store failure: transient errors pass through raw
// so the retry loop can see them, everything else becomes SYS_001.
func storeErr(op string, err error) error {
	if isRetryableTxErr(err) {
		return err
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}
