package funding

// startRequest captures user-provided data to fund a wallet via checkout.
type startRequest struct {
	AmountMinor int64  `json:"amount_kobo"`
	PayerEmail  string `json:"payer_email"`
}

// resolveRequest reports the checkout surface outcome for an attempt.
type resolveRequest struct {
	Outcome   string `json:"outcome"`
	Reference string `json:"reference"`
}

// attemptResponse represents the API view of a funding attempt.
type attemptResponse struct {
	AttemptID        string `json:"attempt_id"`
	Status           string `json:"status"`
	AmountMinor      int64  `json:"amount_kobo"`
	Reference        string `json:"reference,omitempty"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	Reason           string `json:"reason,omitempty"`
	Message          string `json:"message,omitempty"`
}

func toResponse(attempt Attempt, message string) attemptResponse {
	return attemptResponse{
		AttemptID:        attempt.ID,
		Status:           string(attempt.Status),
		AmountMinor:      attempt.AmountMinor,
		Reference:        attempt.ProviderRef,
		AuthorizationURL: attempt.AuthorizationURL,
		Reason:           attempt.Reason,
		Message:          message,
	}
}
