package upstream

import (
	"context"
	"net/http"
	"time"
)

// Transaction is a server-authoritative history record. Immutable once
// fetched; amounts are in kobo.
type Transaction struct {
	Reference   string
	Description string
	AmountMinor int64
	Currency    string
	CreatedAt   time.Time
	Status      string
}

type transactionWire struct {
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

type transactionsResponse struct {
	Transactions []transactionWire `json:"transactions"`
}

// Transactions fetches the full transaction history for the token's owner.
func (c *Client) Transactions(ctx context.Context, token string) ([]Transaction, error) {
	var resp transactionsResponse
	if err := c.do(ctx, http.MethodGet, "getTransactions", token, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]Transaction, 0, len(resp.Transactions))
	for _, w := range resp.Transactions {
		records = append(records, Transaction{
			Reference:   w.Reference,
			Description: w.Description,
			AmountMinor: majorToMinor(w.Amount),
			Currency:    w.Currency,
			CreatedAt:   w.CreatedAt,
			Status:      w.Status,
		})
	}
	return records, nil
}
