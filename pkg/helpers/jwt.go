package helpers

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposePasswordReset tags tokens that may only be redeemed by the reset confirmation.
const PurposePasswordReset = "password_reset"

// ErrInvalidToken is the single failure reported for any token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the identity payload carried by a token.
type TokenClaims struct {
	UserID  int64
	Email   string
	Role    string
	Purpose string
}

// Claims is the signed JWT body.
type Claims struct {
	UserID  int64  `json:"id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens with one shared secret.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), now: time.Now}
}

// Issue signs claims with iat=now and exp=now+ttl.
func (m *JWTManager) Issue(tc TokenClaims, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID:  tc.UserID,
		Email:   tc.Email,
		Role:    tc.Role,
		Purpose: tc.Purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(tc.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify parses and validates a token. Every failure is reported as ErrInvalidToken.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	claims, err := parseToken(tokenStr, m.secret, m.now)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parseToken(tokenStr string, secret []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// unused trailing bits of each segment must be zero
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
