package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFlashSignVerifyRoundTrip(t *testing.T) {
	const secret = "test-secret-at-least-16-chars"

	for _, msg := range []string{"No file selected.", "File too large.", "", "naïve ☃ message"} {
		signed := signFlash(msg, secret)
		got, ok := verifyFlash(signed, secret)
		if !ok {
			t.Fatalf("verifyFlash(%q) rejected own signature", msg)
		}
		if got != msg {
			t.Fatalf("verifyFlash = %q, want %q", got, msg)
		}
	}
}

func TestFlashRejectsTampering(t *testing.T) {
	const secret = "test-secret-at-least-16-chars"

	signed := signFlash("original message", secret)

	cases := []struct {
		name  string
		value string
	}{
		{"modified payload", "x" + signed},
		{"truncated signature", signed[:len(signed)-2]},
		{"no separator", strings.ReplaceAll(signed, ".", "")},
		{"wrong secret", signFlash("original message", "another-secret-16-chars-long")},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if msg, ok := verifyFlash(tc.value, secret); ok {
				t.Fatalf("verifyFlash accepted %q as %q", tc.value, msg)
			}
		})
	}
}

func TestPopFlashClearsCookie(t *testing.T) {
	setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: signFlash("hello", cfg.CookieSecret)})
	rec := httptest.NewRecorder()

	if msg := popFlash(rec, req); msg != "hello" {
		t.Fatalf("popFlash = %q", msg)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("flash cookie was not cleared")
	}
}

func TestPopFlashIgnoresForgedCookie(t *testing.T) {
	setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "forged.deadbeef"})
	rec := httptest.NewRecorder()

	if msg := popFlash(rec, req); msg != "" {
		t.Fatalf("popFlash = %q, want empty", msg)
	}
}
