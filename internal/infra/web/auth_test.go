//go:build !integration

package web

import (
	"testing"
	"time"
)

func TestAuthRoundTrip(t *testing.T) {
	a := NewAuthManager("secret", time.Hour)

	tok, err := a.Mint("gate-7")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	claims, err := a.parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.GateID != "gate-7" || claims.Role != "staff" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	a := NewAuthManager("secret", -time.Minute)

	tok, err := a.Mint("gate-7")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := a.parse(tok); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestAuthRejectsGarbage(t *testing.T) {
	a := NewAuthManager("secret", time.Hour)
	if _, err := a.parse("not.a.jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
