// Package auth issues and verifies the HS256 bearer tokens used by the
// API. Verification is stateless; every request re-checks signature and
// expiry against the shared secret.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the decoded token payload handed to handlers: the subject
// id plus the name/avatar snapshot embedded at login time.
type Identity struct {
	ID     primitive.ObjectID
	Name   string
	Avatar string
}

type claims struct {
	jwt.RegisteredClaims
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

var ErrInvalidToken = errors.New("invalid token")

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(id Identity) (string, error) {
	now := time.Now().UTC()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Name:   id.Name,
		Avatar: id.Avatar,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) Verify(raw string) (Identity, error) {
	// login responses prefix the token with the scheme; accept both forms
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}

	c := &claims{}
	tok, err := jwt.ParseWithClaims(raw, c, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || tok == nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}

	oid, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return Identity{ID: oid, Name: c.Name, Avatar: c.Avatar}, nil
}
