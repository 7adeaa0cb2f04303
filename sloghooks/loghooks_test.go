package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufLogger() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &buf, slog.New(h)
}

func countLines(buf *bytes.Buffer, substr string) int {
	n := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func TestSamplingEveryN(t *testing.T) {
	buf, l := newBufLogger()
	h := New(l, Options{HitEvery: 3})

	for i := 0; i < 9; i++ {
		h.Hit()
	}
	if got := countLines(buf, "memoize.hit"); got != 3 {
		t.Fatalf("sampled hit lines = %d, want 3 (every 3rd of 9)", got)
	}
}

func TestSamplingZeroAndOneLogAll(t *testing.T) {
	buf, l := newBufLogger()
	h := New(l, Options{MissEvery: 1})

	h.Miss()
	h.Miss()
	if got := countLines(buf, "memoize.miss"); got != 2 {
		t.Fatalf("miss lines = %d, want 2", got)
	}
}

func TestFailureAlwaysLogged(t *testing.T) {
	buf, l := newBufLogger()
	h := New(l, Options{})

	h.Failure(errors.New("boom"))
	if got := countLines(buf, "memoize.failure"); got != 1 {
		t.Fatalf("failure lines = %d, want 1", got)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("failure line should carry the error, got %q", buf.String())
	}
}

// TestFetchErrorRedactsURL: raw urls never reach the log; only the hash does.
func TestFetchErrorRedactsURL(t *testing.T) {
	buf, l := newBufLogger()
	h := New(l, Options{})

	const url = "https://api.example.com/secret?token=hunter2"
	h.FetchError(url, errors.New("refused"))

	out := buf.String()
	if strings.Contains(out, "hunter2") || strings.Contains(out, "api.example.com") {
		t.Fatalf("url must be redacted, got %q", out)
	}
	if got := countLines(buf, "memoize.fetch_error"); got != 1 {
		t.Fatalf("fetch_error lines = %d, want 1", got)
	}
}

func TestCustomRedactor(t *testing.T) {
	buf, l := newBufLogger()
	h := New(l, Options{Redact: func(string) string { return "<key>" }})

	h.SelfHeal("fetch:ns:deadbeef", "corrupt")
	out := buf.String()
	if !strings.Contains(out, "<key>") || strings.Contains(out, "deadbeef") {
		t.Fatalf("custom redactor not applied: %q", out)
	}
	if !strings.Contains(out, "corrupt") {
		t.Fatalf("reason missing from self_heal line: %q", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.Hit()
	h.Miss()
	h.Failure(errors.New("boom"))
	h.CacheHit("k")
	h.CacheMiss("k")
	h.SelfHeal("k", "corrupt")
	h.SetRejected("k")
	h.FetchError("u", errors.New("boom"))
}
