package upstream

import (
	"context"
	"net/http"
)

// LoginResult carries the credential issued by the backend on login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	LoggedIn    bool   `json:"loggedIn"`
}

// Login exchanges username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "account/token", "", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// RegisterInput captures the fields required to open an account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates a backend account.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.do(ctx, http.MethodPost, "account/register", "", input, nil)
}

// RequestPasswordReset asks the backend to start a password reset for email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "account/requestPasswordReset", "", body, nil)
}

// ResetPasswordInput carries the reset code issued to the user.
type ResetPasswordInput struct {
	Email       string `json:"email"`
	ResetCode   string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completes a password reset.
func (c *Client) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	return c.do(ctx, http.MethodPost, "account/resetPassword", "", input, nil)
}

// Account is the authenticated profile and balance view. Balance is in kobo.
type Account struct {
	BalanceMinor int64
	FirstName    string
	LastName     string
}

type accountVerifyResponse struct {
	Wallet struct {
		Amount float64 `json:"amount"`
	} `json:"Wallet"`
	Profile struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
	} `json:"Profile"`
}

// VerifyAccount fetches the wallet balance and profile for the token's owner.
// Fields missing from the response decode to zero values rather than failing,
// since older backend versions omit empty profiles.
func (c *Client) VerifyAccount(ctx context.Context, token string) (Account, error) {
	var resp accountVerifyResponse
	if err := c.do(ctx, http.MethodGet, "account/verify", token, nil, &resp); err != nil {
		return Account{}, err
	}
	return Account{
		BalanceMinor: majorToMinor(resp.Wallet.Amount),
		FirstName:    resp.Profile.FirstName,
		LastName:     resp.Profile.LastName,
	}, nil
}
