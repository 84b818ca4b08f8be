package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadToken = errors.New("invalid token")

// Hasher turns a password into the value stored as User.PasswordHash.
type Hasher interface {
	Hash(pw string) (string, error)
	Check(hash, pw string) bool
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(pw string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

func (BcryptHasher) Check(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// LegacyHasher is the plain base64 encoding written by the original browser
// widget. It is reversible and unsalted; use it only to read such data.
type LegacyHasher struct{}

func (LegacyHasher) Hash(pw string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(pw)), nil
}

func (h LegacyHasher) Check(hash, pw string) bool {
	want, _ := h.Hash(pw)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(want)) == 1
}

// NewHasher maps the PASSWORD_HASHER setting to a Hasher.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", "bcrypt":
		return BcryptHasher{}, nil
	case "legacy":
		return LegacyHasher{}, nil
	}
	return nil, errors.New("unknown password hasher: " + name)
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenTTL is the lifetime of an access token.
const TokenTTL = 15 * time.Minute

func MakeToken(email, secret string) (string, error) {
	now := time.Now()
	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.Email == "" {
		return nil, ErrBadToken
	}
	return c, nil
}
