package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "mealhub-test",
		Duration: time.Hour,
	}

	u := &User{ID: "u1", Username: "parent"}
	token, exp, err := ts.Sign(u)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("expiry should be in the future")
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "parent" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "mealhub-test" {
		t.Errorf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := TokenService{Secret: []byte("right"), Issuer: "mealhub", Duration: time.Hour}
	verifier := TokenService{Secret: []byte("wrong"), Issuer: "mealhub", Duration: time.Hour}

	token, _, err := signer.Sign(&User{ID: "u1", Username: "parent"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Error("expected parse failure with wrong secret")
	}
}
