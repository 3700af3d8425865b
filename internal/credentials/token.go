package credentials

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for tokens whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for tokens that fail parsing or signature
	// verification, or whose subject is not a user ID.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the validated contents of a session token.
type Claims struct {
	Subject   int64
	ExpiresAt time.Time
}

// TokenIssuer signs and validates HS256 session tokens. The signing secret
// and token lifetime are injected at construction.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given secret and lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue mints a signed token for the given user, expiring after the
// configured lifetime. Signing is stateless; nothing is persisted.
func (t *TokenIssuer) Issue(userID int64) (string, error) {
	return t.IssueAt(userID, time.Now())
}

// IssueAt mints a token as if issued at the given time. Split out from Issue
// so expiry behavior is testable without sleeping.
func (t *TokenIssuer) IssueAt(userID int64, issuedAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate parses a token and returns its claims. Tokens with a bad
// signature, wrong algorithm, or malformed subject fail with ErrTokenInvalid;
// a past expiry fails with ErrTokenExpired.
func (t *TokenIssuer) Validate(tokenString string) (Claims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}

	return Claims{Subject: subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
