package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/creatorly/videos-ms-go/internal/api_context"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := tok.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   "core",
		"aud":   "videos",
		"sub":   "7",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Minute).Unix(),
		"roles": []string{"creator"},
	}
}

func TestWithDSTAuth_Passthrough(t *testing.T) {
	var called bool
	h := WithDSTAuth("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !called {
		t.Error("an empty key must disable auth entirely")
	}
}

func TestWithDSTAuth_ValidToken(t *testing.T) {
	key, pubPEM := testKeyPair(t)

	var gotAccount int64
	h := WithDSTAuth(pubPEM)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount, _ = api_context.AuthAccountIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, validClaims()))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	if gotAccount != 7 {
		t.Errorf("expected account 7 in context, got %d", gotAccount)
	}
}

func TestWithDSTAuth_Rejections(t *testing.T) {
	key, pubPEM := testKeyPair(t)
	otherKey, _ := testKeyPair(t)

	mutate := func(fn func(jwt.MapClaims)) jwt.MapClaims {
		c := validClaims()
		fn(c)
		return c
	}

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"wrong signer", signToken(t, otherKey, validClaims())},
		{"bad issuer", signToken(t, key, mutate(func(c jwt.MapClaims) { c["iss"] = "other" }))},
		{"bad audience", signToken(t, key, mutate(func(c jwt.MapClaims) { c["aud"] = "medias" }))},
		{"expired", signToken(t, key, mutate(func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }))},
		{"non-numeric sub", signToken(t, key, mutate(func(c jwt.MapClaims) { c["sub"] = "creator-7" }))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			h := WithDSTAuth(pubPEM)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/videos", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if called {
				t.Error("handler must not run")
			}
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
		})
	}
}
