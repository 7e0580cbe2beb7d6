// Package history projects the server-side transaction log for display.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// maxEntries caps how many records a single listing returns.
const maxEntries = 10

// Lister fetches the raw transaction history from the backend.
type Lister interface {
	Transactions(ctx context.Context, token string) ([]upstream.Transaction, error)
}

// Service shapes the backend transaction log into the display projection:
// every call re-fetches, optionally filters to a single day, and keeps the
// most recent entries only.
type Service struct {
	lister Lister
}

// NewService builds a history projection service.
func NewService(lister Lister) *Service {
	return &Service{lister: lister}
}

// List returns up to maxEntries transactions, newest first. A non-nil day
// restricts results to records created on that calendar day (UTC).
func (s *Service) List(ctx context.Context, token string, day *time.Time) ([]upstream.Transaction, error) {
	records, err := s.lister.Transactions(ctx, token)
	if err != nil {
		return nil, err
	}

	if day != nil {
		y, m, d := day.UTC().Date()
		filtered := records[:0]
		for _, record := range records {
			ry, rm, rd := record.CreatedAt.UTC().Date()
			if ry == y && rm == m && rd == d {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if len(records) > maxEntries {
		records = records[:maxEntries]
	}
	return records, nil
}
