package funding

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

func setupHandlerApp(t *testing.T, provider *fakeProvider) *fiber.App {
	t.Helper()
	svc, _, _ := newTestService(t, provider)
	handler := NewHandler(svc)

	app := fiber.New()
	// Stand-in for session auth.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_id", "u1")
		c.Locals("upstream_token", "tok")
		return c.Next()
	})
	app.Post("/funding/attempts", handler.Start)
	app.Post("/funding/attempts/:attemptId/resolve", handler.Resolve)
	app.Get("/funding/attempts/:attemptId", handler.Get)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("app.Test %s: %v", path, err)
	}
	defer resp.Body.Close()
	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp.StatusCode, payload
}

func TestStartEndpoint(t *testing.T) {
	app := setupHandlerApp(t, &fakeProvider{reference: "ps_abc"})

	status, payload := postJSON(t, app, "/funding/attempts", `{"amount_kobo":5000,"payer_email":"a@b.c"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if payload["status"] != string(StatusAwaitingProvider) {
		t.Fatalf("payload = %v", payload)
	}
	if url, _ := payload["authorization_url"].(string); url == "" {
		t.Fatal("no authorization_url in response")
	}

	// Validation failure.
	status, _ = postJSON(t, app, "/funding/attempts", `{"amount_kobo":-5,"payer_email":"a@b.c"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("invalid amount status = %d, want 400", status)
	}

	// Second active attempt.
	status, _ = postJSON(t, app, "/funding/attempts", `{"amount_kobo":2000,"payer_email":"a@b.c"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("in-flight status = %d, want 409", status)
	}
}

func TestResolveEndpointHappyPath(t *testing.T) {
	app := setupHandlerApp(t, &fakeProvider{reference: "ps_abc"})

	_, created := postJSON(t, app, "/funding/attempts", `{"amount_kobo":5000,"payer_email":"a@b.c"}`)
	id, _ := created["attempt_id"].(string)

	status, payload := postJSON(t, app, "/funding/attempts/"+id+"/resolve", `{"outcome":"success","reference":"ps_abc"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if payload["status"] != string(StatusCredited) {
		t.Fatalf("payload = %v", payload)
	}
	if payload["message"] != msgCredited {
		t.Fatalf("message = %v", payload["message"])
	}
}

func TestResolveEndpointFailedVerificationIsRetryable(t *testing.T) {
	provider := &fakeProvider{reference: "ps_abc"}
	provider.verifyFn = func(int) (upstream.ChargeVerification, error) {
		return upstream.ChargeVerification{Status: "abandoned"}, nil
	}
	app := setupHandlerApp(t, provider)

	_, created := postJSON(t, app, "/funding/attempts", `{"amount_kobo":5000,"payer_email":"a@b.c"}`)
	id, _ := created["attempt_id"].(string)

	status, payload := postJSON(t, app, "/funding/attempts/"+id+"/resolve", `{"outcome":"success","reference":"ps_abc"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if payload["status"] != string(StatusFailed) {
		t.Fatalf("payload = %v", payload)
	}
	if payload["message"] != msgNotCompleted {
		t.Fatalf("message = %v", payload["message"])
	}
}

func TestResolveEndpointCreditFailureIsNotRetryable(t *testing.T) {
	provider := &fakeProvider{
		reference: "ps_abc",
		fundErr:   &upstream.Error{Kind: upstream.KindServer, Status: 500, Message: "ledger down"},
	}
	app := setupHandlerApp(t, provider)

	_, created := postJSON(t, app, "/funding/attempts", `{"amount_kobo":5000,"payer_email":"a@b.c"}`)
	id, _ := created["attempt_id"].(string)

	status, payload := postJSON(t, app, "/funding/attempts/"+id+"/resolve", `{"outcome":"success","reference":"ps_abc"}`)
	if status != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", status)
	}
	message, _ := payload["message"].(string)
	if !strings.Contains(message, "do not retry") || !strings.Contains(message, "ps_abc") {
		t.Fatalf("message = %q", message)
	}
}

func TestResolveEndpointRejectsUnknownOutcome(t *testing.T) {
	app := setupHandlerApp(t, &fakeProvider{reference: "ps_abc"})

	_, created := postJSON(t, app, "/funding/attempts", `{"amount_kobo":5000,"payer_email":"a@b.c"}`)
	id, _ := created["attempt_id"].(string)

	status, _ := postJSON(t, app, "/funding/attempts/"+id+"/resolve", `{"outcome":"maybe"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestGetEndpoint(t *testing.T) {
	app := setupHandlerApp(t, &fakeProvider{reference: "ps_abc"})

	_, created := postJSON(t, app, "/funding/attempts", `{"amount_kobo":5000,"payer_email":"a@b.c"}`)
	id, _ := created["attempt_id"].(string)

	req := httptest.NewRequest(fiber.MethodGet, "/funding/attempts/"+id, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodGet, fmt.Sprintf("/funding/attempts/%s", "missing"), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
