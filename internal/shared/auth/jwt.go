package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"
)

// Claims is the identity carried by a session token.
type Claims struct {
	Sub     string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Exp     int64  `json:"exp,omitempty"`
	Iat     int64  `json:"iat,omitempty"`
}

// ErrInvalidToken covers every verification failure: bad shape, bad
// signature, expired, or missing subject. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// encodedHeader is base64url({"alg":"HS256","typ":"JWT"}), fixed for every
// token this package issues.
var encodedHeader = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

// SignJWT issues an HS256 token for the claims. Iat and Exp default to now
// and now+24h when zero.
func SignJWT(claims Claims) (string, error) {
	if claims.Sub == "" {
		return "", errors.New("sub is required")
	}
	secret, err := loadSecret()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC().Unix()
	if claims.Iat == 0 {
		claims.Iat = now
	}
	if claims.Exp == 0 {
		claims.Exp = now + int64(tokenTTL/time.Second)
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := encodedHeader + "." + base64.RawURLEncoding.EncodeToString(payload)
	return signingInput + "." + signature(signingInput, secret), nil
}

// VerifyJWT checks the signature and expiry and returns the claims.
func VerifyJWT(token string) (Claims, error) {
	secret, err := loadSecret()
	if err != nil {
		return Claims{}, err
	}

	header, rest, ok := strings.Cut(token, ".")
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	body, sig, ok := strings.Cut(rest, ".")
	if !ok || strings.Contains(sig, ".") {
		return Claims{}, ErrInvalidToken
	}

	signingInput := header + "." + body
	if !hmac.Equal([]byte(sig), []byte(signature(signingInput, secret))) {
		return Claims{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Sub == "" {
		return Claims{}, ErrInvalidToken
	}
	if claims.Exp > 0 && time.Now().UTC().Unix() > claims.Exp {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func signature(input string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// loadSecret reads JWT_SECRET. Production refuses to run without one; dev
// and tests fall back to a fixed value.
func loadSecret() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret != "" {
		return []byte(secret), nil
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod":
		return nil, errors.New("JWT_SECRET required in production")
	}
	return []byte("dev-secret"), nil
}
