package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's balance in one loyalty program. One wallet exists
// per (user, program) pair. Escrowed points back open trade offers and are
// unavailable to conversions until the offer resolves.
//
// Invariants: Balance >= 0 and 0 <= Escrowed <= Balance.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Program   Program   `json:"program"`
	Balance   int64     `json:"balance"`
	Escrowed  int64     `json:"escrowed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available returns the spendable balance, net of escrow.
func (w *Wallet) Available() int64 {
	return w.Balance - w.Escrowed
}
