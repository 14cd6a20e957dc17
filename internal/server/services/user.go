// Package services contains server-side business logic. This file implements
// UserService, which runs the access gate and mints session JWTs.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ssrdocs/internal/gate"
	"github.com/dmitrijs2005/ssrdocs/internal/server/auth"
	"github.com/dmitrijs2005/ssrdocs/internal/server/config"
)

// LoginResult bundles the signed token with the session it encodes.
type LoginResult struct {
	Token   string
	Session *gate.Session
}

// UserService authenticates (user, PIN) pairs and issues session tokens.
type UserService struct {
	gate                  *gate.Gate
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService over a credential source.
func NewUserService(source gate.CredentialSource, cfg *config.Config) *UserService {
	return &UserService{
		gate:                  gate.New(source),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Login verifies the credentials and returns a signed token carrying the
// session. Gate failures (common.ErrUnauthorized, common.ErrNoProjectsAssigned)
// pass through unchanged so the transport can map them.
func (s *UserService) Login(ctx context.Context, username, pin string) (*LoginResult, error) {
	session, err := s.gate.Authenticate(ctx, username, pin)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(session, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Session: session}, nil
}

// ParseToken recovers the session from a bearer token.
func (s *UserService) ParseToken(tokenString string) (*gate.Session, error) {
	return auth.ParseSession(tokenString, s.jwtSecret)
}
