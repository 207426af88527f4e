package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

// Flash messages survive the redirect back to the upload form in a signed,
// single-use cookie. The signature keeps the message tamper-proof; a cookie
// that fails verification is silently discarded.

const flashCookie = "count_flash"

func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    signFlash(msg, cfg.CookieSecret),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie, returning the verified message
// or the empty string.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	msg, ok := verifyFlash(c.Value, cfg.CookieSecret)
	if !ok {
		return ""
	}
	return msg
}

func signFlash(msg, secret string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(msg))
	return payload + "." + flashMAC(payload, secret)
}

func verifyFlash(value, secret string) (string, bool) {
	payload, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(flashMAC(payload, secret))) {
		return "", false
	}
	b, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func flashMAC(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
