// Package service implements session establishment: credential verification
// and bearer token issuance.
package service

import (
	"context"
	"errors"

	"tenantcore/internal/credentials"
	"tenantcore/internal/store"
	"tenantcore/platform/apperr"
	"tenantcore/platform/logger"
)

// msgInvalidCredentials is returned for both unknown emails and wrong
// passwords so responses do not reveal which accounts exist.
const msgInvalidCredentials = "invalid email or password"

type Service struct {
	store  store.Store
	tokens *credentials.TokenIssuer
	log    *logger.Logger
}

func New(st store.Store, tokens *credentials.TokenIssuer, log *logger.Logger) *Service {
	return &Service{store: st, tokens: tokens, log: log}
}

// SignIn verifies the credentials and returns a signed bearer token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.AuthEvent("sign_in", email, false, "unknown email")
			return "", apperr.Unauthorized(msgInvalidCredentials)
		}
		s.log.DatabaseError("session.sign_in", err)
		return "", apperr.Wrap(apperr.KindInternal, "could not sign in", err)
	}

	if !credentials.VerifyPassword(password, user.PasswordHash) {
		s.log.AuthEvent("sign_in", email, false, "password mismatch")
		return "", apperr.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "could not issue token", err)
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return token, nil
}

// Profile returns the account behind an authenticated session.
func (s *Service) Profile(ctx context.Context, userID int64) (store.User, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, apperr.NotFound("user not found")
		}
		s.log.DatabaseError("session.profile", err)
		return store.User{}, apperr.Wrap(apperr.KindInternal, "could not load profile", err)
	}
	return user, nil
}
