package wallet

import (
	"context"
	"testing"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

type stubVerifier struct {
	account upstream.Account
	err     error
	calls   int
}

func (s *stubVerifier) VerifyAccount(context.Context, string) (upstream.Account, error) {
	s.calls++
	return s.account, s.err
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	verifier := &stubVerifier{account: upstream.Account{BalanceMinor: 125000, FirstName: "Ada", LastName: "Obi"}}
	svc := NewService(verifier)

	snapshot, err := svc.Refresh(context.Background(), "h1", "tok")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snapshot.BalanceMinor != 125000 || snapshot.FirstName != "Ada" {
		t.Fatalf("snapshot = %+v", snapshot)
	}
	if snapshot.AsOf.IsZero() {
		t.Fatal("AsOf not stamped")
	}

	verifier.account.BalanceMinor = 130000
	if _, err := svc.Refresh(context.Background(), "h1", "tok"); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}

	current, ok := svc.Current("h1")
	if !ok {
		t.Fatal("no cached snapshot")
	}
	if current.BalanceMinor != 130000 {
		t.Fatalf("BalanceMinor = %d, want 130000", current.BalanceMinor)
	}
}

func TestRefreshRejectsNegativeBalance(t *testing.T) {
	verifier := &stubVerifier{account: upstream.Account{BalanceMinor: -100}}
	svc := NewService(verifier)

	if _, err := svc.Refresh(context.Background(), "h1", "tok"); err == nil {
		t.Fatal("negative balance accepted")
	}
	if _, ok := svc.Current("h1"); ok {
		t.Fatal("negative balance cached")
	}
}

func TestRefreshFailureKeepsLastSnapshot(t *testing.T) {
	verifier := &stubVerifier{account: upstream.Account{BalanceMinor: 5000}}
	svc := NewService(verifier)
	if _, err := svc.Refresh(context.Background(), "h1", "tok"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	verifier.err = &upstream.Error{Kind: upstream.KindTransport, Message: "down"}
	if _, err := svc.Refresh(context.Background(), "h1", "tok"); err == nil {
		t.Fatal("expected error")
	}

	current, ok := svc.Current("h1")
	if !ok || current.BalanceMinor != 5000 {
		t.Fatalf("stale snapshot lost: %+v ok=%v", current, ok)
	}
}

func TestForgetDropsSnapshot(t *testing.T) {
	verifier := &stubVerifier{account: upstream.Account{BalanceMinor: 5000}}
	svc := NewService(verifier)
	if _, err := svc.Refresh(context.Background(), "h1", "tok"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	svc.Forget("h1")
	if _, ok := svc.Current("h1"); ok {
		t.Fatal("snapshot survived Forget")
	}
}
