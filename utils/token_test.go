package utils

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken returned an empty token")
	}

	userID, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("ValidateToken user ID = %d, want 42", userID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken accepted a malformed token")
	}
}

func TestValidateTokenRejectsWrongSignature(t *testing.T) {
	// Header and payload of a valid HS256 token with a signature from a
	// different secret
	forged := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJ1c2VyX2lkIjo0Mn0." +
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	if _, err := ValidateToken(forged); err == nil {
		t.Error("ValidateToken accepted a token with a forged signature")
	}
}
