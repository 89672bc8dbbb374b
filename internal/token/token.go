// Package token encodes and decodes the signed bearer tokens izin issues.
//
// The codec deliberately does not enforce expiry: the auth engine needs the
// raw iat/exp values of an expired token to make its own decision, so claims
// validation happens there, not here.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/progrestian/izin/internal/common"
)

// Claims is the claim set carried by a token: who it authenticates and the
// issue/expiry window, as seconds since epoch.
type Claims struct {
	Subject string
	Issued  int64
	Expiry  int64
}

// Encode serializes claims into a compact HS256-signed JWT using the
// process-wide signing secret.
func Encode(claims Claims, secret []byte) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   claims.Subject,
		IssuedAt:  jwt.NewNumericDate(time.Unix(claims.Issued, 0)),
		ExpiresAt: jwt.NewNumericDate(time.Unix(claims.Expiry, 0)),
	})

	encoded, err := t.SignedString(secret)
	if err != nil {
		return "", err
	}

	return encoded, nil
}

// Decode verifies the signature of an encoded token and returns its claims.
// Malformed structure, bad encoding and bad signature all collapse to
// common.ErrorInvalidToken; nothing distinguishes them to the caller.
// An expired token decodes successfully.
func Decode(encoded string, secret []byte) (*Claims, error) {
	parsed := &jwt.RegisteredClaims{}

	t, err := jwt.ParseWithClaims(encoded, parsed, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil || !t.Valid {
		return nil, common.ErrorInvalidToken
	}

	if parsed.IssuedAt == nil || parsed.ExpiresAt == nil {
		return nil, common.ErrorInvalidToken
	}

	return &Claims{
		Subject: parsed.Subject,
		Issued:  parsed.IssuedAt.Unix(),
		Expiry:  parsed.ExpiresAt.Unix(),
	}, nil
}
