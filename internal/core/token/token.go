// Package token issues and verifies the HMAC-SHA256 signed JWTs that carry
// identity claims between login and the protected endpoints. Signing and
// verification share a single symmetric secret; issuer and audience are
// intentionally not validated (development-grade trust boundary).
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL matches the 7-day token lifetime of the login flow.
const DefaultTTL = 7 * 24 * time.Hour

// Claim keys embedded in every issued token.
const (
	ClaimFullName = "fullName"
	ClaimUserID   = "id"
	ClaimEmail    = "email"
	ClaimRole     = "role"
)

var ErrMalformed = errors.New("malformed token")
var ErrInvalidSignature = errors.New("invalid token signature")
var ErrExpired = errors.New("token expired")

// Claims is the verified claim set exposed to authorization checks.
type Claims struct {
	FullName  string
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Issuer builds signed tokens for authenticated identities.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token carrying the identity claims and an expiry of now+ttl.
func (i *Issuer) Issue(userID, fullName, email, role string) (string, error) {
	claims := jwt.MapClaims{
		ClaimFullName: fullName,
		ClaimUserID:   userID,
		ClaimEmail:    email,
		ClaimRole:     role,
		"exp":         i.now().Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verifier validates compact tokens and extracts their claims.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify parses the compact token, checks the HMAC signature and expiry, and
// returns the embedded claims. Failures map to one of the package sentinels.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, mapClaims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrInvalidSignature
	}

	claims := &Claims{
		FullName: stringClaim(mapClaims, ClaimFullName),
		UserID:   stringClaim(mapClaims, ClaimUserID),
		Email:    stringClaim(mapClaims, ClaimEmail),
		Role:     stringClaim(mapClaims, ClaimRole),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
