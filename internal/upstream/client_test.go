package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginSendsCredentialsWithoutToken(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok123", "loggedIn": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.Login(context.Background(), "ada", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization header sent on login: %q", gotAuth)
	}
	if gotBody["username"] != "ada" || gotBody["password"] != "s3cret" {
		t.Fatalf("request body = %v", gotBody)
	}
	if result.AccessToken != "tok123" || !result.LoggedIn {
		t.Fatalf("result = %+v", result)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.VerifyAccount(context.Background(), "tok123"); err != nil {
		t.Fatalf("VerifyAccount: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestServerErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Login(context.Background(), "ada", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsServer(err) {
		t.Fatalf("IsServer = false for %v", err)
	}
	if got := HTTPStatus(err); got != http.StatusUnauthorized {
		t.Fatalf("HTTPStatus = %d, want 401", got)
	}
}

func TestUnreachableBackendIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.VerifyAccount(context.Background(), "tok")
	if !IsTransport(err) {
		t.Fatalf("IsTransport = false for %v", err)
	}
	if got := HTTPStatus(err); got != http.StatusBadGateway {
		t.Fatalf("HTTPStatus = %d, want 502", got)
	}
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.VerifyAccount(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsTransport(err) || IsServer(err) {
		t.Fatalf("decode failure misclassified: %v", err)
	}
	if got := HTTPStatus(err); got != http.StatusBadGateway {
		t.Fatalf("HTTPStatus = %d, want 502", got)
	}
}

func TestVerifyAccountConvertsNairaAndToleratesMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Wallet":{"amount":1250.75}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	account, err := client.VerifyAccount(context.Background(), "tok")
	if err != nil {
		t.Fatalf("VerifyAccount: %v", err)
	}
	if account.BalanceMinor != 125075 {
		t.Fatalf("BalanceMinor = %d, want 125075", account.BalanceMinor)
	}
	if account.FirstName != "" || account.LastName != "" {
		t.Fatalf("profile should be empty, got %+v", account)
	}
}

func TestFundWalletSendsNaira(t *testing.T) {
	var gotBody map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if err := client.FundWallet(context.Background(), "tok", 500000); err != nil {
		t.Fatalf("FundWallet: %v", err)
	}
	if gotBody["transaction_amt"] != 5000 {
		t.Fatalf("transaction_amt = %v, want 5000 naira", gotBody["transaction_amt"])
	}
}

func TestVerifyPaystackKeepsKobo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","amount":500000}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	verification, err := client.VerifyPaystack(context.Background(), "tok", "ps_ref")
	if err != nil {
		t.Fatalf("VerifyPaystack: %v", err)
	}
	if verification.AmountMinor != 500000 {
		t.Fatalf("AmountMinor = %d, want 500000", verification.AmountMinor)
	}
}

func TestUnconfiguredClientFailsFast(t *testing.T) {
	client := NewClient("", time.Second)
	_, err := client.Login(context.Background(), "ada", "pw")
	if !IsTransport(err) {
		t.Fatalf("got %v, want transport failure", err)
	}
}
