package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a feed snapshot for one directed program pair.
// Read-only to the engine.
type ExchangeRate struct {
	FromProgram Program         `json:"from_program"`
	ToProgram   Program         `json:"to_program"`
	Rate        decimal.Decimal `json:"rate"` // destination points per source point, > 0
	AsOf        time.Time       `json:"as_of"`
}

// StaleAt reports whether the snapshot is older than the given window at now.
func (r *ExchangeRate) StaleAt(window time.Duration, now time.Time) bool {
	return now.Sub(r.AsOf) > window
}
