package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(client, time.Hour),
	}
}

func TestSessionLifecycle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Get(ctx, "h1"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("missing handle: got %v, want ErrNotFound", err)
			}

			if err := store.Set(ctx, "h1", "tok1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			sess, err := store.Get(ctx, "h1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if sess.Token != "tok1" {
				t.Fatalf("token = %q, want tok1", sess.Token)
			}

			if err := store.Clear(ctx, "h1"); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, err := store.Get(ctx, "h1"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("after clear: got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPINLifecycle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.SetPIN(ctx, "nope", "1234"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("SetPIN without session: got %v, want ErrNotFound", err)
			}

			if err := store.Set(ctx, "h1", "tok1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := store.VerifyPIN(ctx, "h1", "1234"); !errors.Is(err, ErrPINNotSet) {
				t.Fatalf("verify before set: got %v, want ErrPINNotSet", err)
			}

			if err := store.SetPIN(ctx, "h1", "123"); err == nil {
				t.Fatal("short PIN accepted")
			}
			if err := store.SetPIN(ctx, "h1", "1234"); err != nil {
				t.Fatalf("SetPIN: %v", err)
			}
			if err := store.VerifyPIN(ctx, "h1", "1234"); err != nil {
				t.Fatalf("VerifyPIN: %v", err)
			}
			if err := store.VerifyPIN(ctx, "h1", "9999"); !errors.Is(err, ErrPINMismatch) {
				t.Fatalf("wrong PIN: got %v, want ErrPINMismatch", err)
			}

			// The hash never leaves as plain text.
			sess, err := store.Get(ctx, "h1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(sess.PINHash) == "1234" {
				t.Fatal("PIN stored in plain text")
			}
		})
	}
}

func TestReLoginDropsOldPIN(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Set(ctx, "h1", "tok1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := store.SetPIN(ctx, "h1", "1234"); err != nil {
				t.Fatalf("SetPIN: %v", err)
			}
			if err := store.Set(ctx, "h1", "tok2"); err != nil {
				t.Fatalf("re-login Set: %v", err)
			}
			if err := store.VerifyPIN(ctx, "h1", "1234"); !errors.Is(err, ErrPINNotSet) {
				t.Fatalf("after re-login: got %v, want ErrPINNotSet", err)
			}
		})
	}
}

func TestRedisSessionExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()
	if err := store.Set(ctx, "h1", "tok1"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "h1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after TTL: got %v, want ErrNotFound", err)
	}
}
