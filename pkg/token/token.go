// pkg/token/token.go
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InviteClaims is the payload of a signed admin-invite link. SchoolID is nil
// for platform (super admin) invites.
type InviteClaims struct {
	Email    string `json:"email"`
	SchoolID *uint  `json:"school_id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateInviteToken signs an invite for the given email/school/role pair.
func GenerateInviteToken(email string, schoolID *uint, role string, secretKey string, expiryHours int) (string, error) {
	if secretKey == "" {
		return "", errors.New("invite token secret is empty")
	}
	now := time.Now()
	claims := &InviteClaims{
		Email:    email,
		SchoolID: schoolID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fieldhouse",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secretKey))
}

// ValidateInviteToken parses and validates an invite token string.
func ValidateInviteToken(tokenString string, secretKey string) (*InviteClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("invite token secret is empty")
	}

	claims := &InviteClaims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("invite has expired")
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("invite signature is invalid")
		}
		return nil, fmt.Errorf("could not parse invite token: %w", err)
	}

	if !t.Valid {
		return nil, errors.New("invite token is invalid")
	}

	if claims.Email == "" {
		return nil, errors.New("email claim is missing")
	}
	if claims.Role == "" {
		return nil, errors.New("role claim is missing")
	}

	return claims, nil
}
