package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/session"
)

func setupPINApp(t *testing.T) (*fiber.App, session.Store) {
	t.Helper()
	store := session.NewMemoryStore()

	app := fiber.New()
	app.Use(SessionAuth(store))
	app.Post("/spend", RequirePIN(store), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, store
}

func TestRequirePINGatesMoneyMovement(t *testing.T) {
	app, store := setupPINApp(t)
	ctx := context.Background()
	if err := store.Set(ctx, "h1", "tok"); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if err := store.SetPIN(ctx, "h1", "1234"); err != nil {
		t.Fatalf("set PIN: %v", err)
	}

	cases := []struct {
		name       string
		pin        string
		wantStatus int
	}{
		{"missing PIN", "", fiber.StatusForbidden},
		{"wrong PIN", "9999", fiber.StatusForbidden},
		{"correct PIN", "1234", fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(fiber.MethodPost, "/spend", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer h1")
		if tc.pin != "" {
			req.Header.Set(transactionPINHeader, tc.pin)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if resp.StatusCode != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, resp.StatusCode, tc.wantStatus)
		}
	}
}

func TestRequirePINWithoutPINSet(t *testing.T) {
	app, store := setupPINApp(t)
	if err := store.Set(context.Background(), "h1", "tok"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/spend", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer h1")
	req.Header.Set(transactionPINHeader, "1234")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403 when no PIN is set", resp.StatusCode)
	}
}
