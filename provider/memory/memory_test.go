package memory

import (
	"context"
	"testing"
	"time"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := New(Config{})
	t.Cleanup(func() { _ = p.Close(ctx) })

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	if ok, err := p.Set(ctx, "k", []byte("v"), 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	b, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || string(b) != "v" {
		t.Fatalf("Get: b=%q ok=%v err=%v", b, ok, err)
	}

	if err := p.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestTTLExpiresOnGet(t *testing.T) {
	ctx := context.Background()
	p := New(Config{})
	t.Cleanup(func() { _ = p.Close(ctx) })

	if _, err := p.Set(ctx, "k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	if n := p.Len(); n != 0 {
		t.Fatalf("lazy expiry should remove the entry, Len=%d", n)
	}
}

func TestSweepPrunesExpired(t *testing.T) {
	ctx := context.Background()
	p := New(Config{CleanupInterval: 10 * time.Millisecond})
	t.Cleanup(func() { _ = p.Close(ctx) })

	if _, err := p.Set(ctx, "short", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Set(ctx, "keep", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	time.Sleep(60 * time.Millisecond)
	if n := p.Len(); n != 1 {
		t.Fatalf("sweep should leave only the unexpiring entry, Len=%d", n)
	}
	if _, ok, _ := p.Get(ctx, "keep"); !ok {
		t.Fatalf("unexpiring entry must survive the sweep")
	}
}

func TestCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	p := New(Config{CleanupInterval: 5 * time.Millisecond})
	if err := p.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatal(err)
	}
}
