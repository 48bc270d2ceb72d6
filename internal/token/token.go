// Package token issues and verifies the signed session tokens carried in
// the auth_token and admin_token cookies. Tokens are stateless HS256 JWTs;
// there is no server-side session store or revocation list.
//
// Every token embeds a realm claim. User and admin sessions sign with the
// same secret, but a token minted for one realm is rejected by the other,
// so the two cookie namespaces are never interchangeable.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Realm is an independent authentication domain with its own cookie and
// middleware.
type Realm string

const (
	// RealmUser is the realm for registered end users (auth_token cookie).
	RealmUser Realm = "user"

	// RealmAdmin is the realm for admin accounts (admin_token cookie).
	RealmAdmin Realm = "admin"
)

// ErrInvalidToken covers every verification failure: malformed token, bad
// signature, expired, or a token minted for a different realm. Callers only
// need valid-or-not; the distinction is logged, not surfaced.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed claim set: subject identifier, realm, issue and
// expiry times.
type Claims struct {
	jwt.RegisteredClaims
	Realm Realm `json:"realm"`
}

// Issue signs a token for the given subject in the given realm, valid for ttl.
func Issue(subject string, realm Realm, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Realm: realm,
	})

	return t.SignedString(secret)
}

// Verify parses and validates a token string and returns its subject.
// The token must be well-formed, carry a valid signature, be unexpired,
// and have been issued for the expected realm.
func Verify(tokenString string, realm Realm, secret []byte) (string, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Pin the signing method: a token claiming alg=none or an RSA
		// variant must not verify against the HMAC secret.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}

	if claims.Realm != realm {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
