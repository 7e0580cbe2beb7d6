package wallet

import "time"

// Snapshot is the read-only wallet projection shown across screens. Balance
// is in kobo and is never mutated in place; a refresh or a confirmed credit
// replaces the snapshot wholesale.
type Snapshot struct {
	BalanceMinor int64
	FirstName    string
	LastName     string
	AsOf         time.Time
}
