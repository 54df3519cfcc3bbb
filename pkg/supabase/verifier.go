// Package supabase verifies access tokens issued by Supabase Auth.
//
// Supabase signs its access tokens as HS256 JWTs with the project's JWT
// secret, so the API can validate them locally instead of calling the
// /auth/v1/user endpoint for every request.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid authentication token")

// User is the identity carried by a verified access token.
type User struct {
	ID           uuid.UUID
	Email        string
	Role         string
	UserMetadata map[string]any
}

// FullName returns user_metadata.full_name when it is a non-empty string.
func (u *User) FullName() string {
	if u == nil || u.UserMetadata == nil {
		return ""
	}
	name, _ := u.UserMetadata["full_name"].(string)
	return strings.TrimSpace(name)
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// Claims mirrors the payload of a Supabase access token.
type Claims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email,omitempty"`
	Role         string         `json:"role,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type jwtVerifier struct {
	secret   []byte
	audience string
}

// NewJWTVerifier returns a Verifier for HS256 tokens. An empty audience skips
// the aud check.
func NewJWTVerifier(secret, audience string) Verifier {
	return &jwtVerifier{
		secret:   []byte(secret),
		audience: audience,
	}
}

func (v *jwtVerifier) Verify(ctx context.Context, tokenString string) (*User, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	return &User{
		ID:           userID,
		Email:        claims.Email,
		Role:         claims.Role,
		UserMetadata: claims.UserMetadata,
	}, nil
}
