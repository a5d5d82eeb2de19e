package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the terminal outcome of a conversion.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an append-only record of a wallet-to-wallet conversion.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	FromProgram Program           `json:"from_program"`
	ToProgram   Program           `json:"to_program"`
	AmountFrom  int64             `json:"amount_from"`
	AmountTo    int64             `json:"amount_to"`
	FeeApplied  int64             `json:"fee_applied"`
	Rate        decimal.Decimal   `json:"rate"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}
