package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tenantcore/internal/credentials"
	"tenantcore/internal/store/storetest"
	"tenantcore/platform/apperr"
	"tenantcore/platform/logger"
)

func newFixture(t *testing.T) (*Service, *storetest.Store, *credentials.TokenIssuer) {
	t.Helper()
	st := storetest.New()
	tokens := credentials.NewTokenIssuer("test-secret", 30*time.Minute)
	return New(st, tokens, logger.New("test")), st, tokens
}

func seedUser(t *testing.T, st *storetest.Store, email, password string) int64 {
	t.Helper()
	hash, err := credentials.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := st.CreateUser(context.Background(), email, hash)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}

func TestSignInIssuesToken(t *testing.T) {
	svc, st, tokens := newFixture(t)
	userID := seedUser(t, st, "owner@example.com", "s3cret")

	token, err := svc.SignIn(context.Background(), "owner@example.com", "s3cret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != userID {
		t.Errorf("token subject = %d, want %d", claims.Subject, userID)
	}
}

func TestSignInRejectionsAreIndistinguishable(t *testing.T) {
	svc, st, _ := newFixture(t)
	seedUser(t, st, "owner@example.com", "s3cret")

	_, unknownErr := svc.SignIn(context.Background(), "nobody@example.com", "s3cret")
	_, wrongPassErr := svc.SignIn(context.Background(), "owner@example.com", "wrong")

	for name, err := range map[string]error{"unknown email": unknownErr, "wrong password": wrongPassErr} {
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("%s: error = %v, want unauthorized", name, err)
		}
	}

	var a, b *apperr.Error
	if !errors.As(unknownErr, &a) || !errors.As(wrongPassErr, &b) {
		t.Fatal("rejections are not domain errors")
	}
	if a.Message != b.Message {
		t.Errorf("rejection messages differ: %q vs %q (reveals account existence)", a.Message, b.Message)
	}
}

func TestSignInEmailIsCaseSensitive(t *testing.T) {
	svc, st, _ := newFixture(t)
	seedUser(t, st, "owner@example.com", "s3cret")

	if _, err := svc.SignIn(context.Background(), "OWNER@example.com", "s3cret"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("differently-cased email error = %v, want unauthorized", err)
	}
}

func TestProfile(t *testing.T) {
	svc, st, _ := newFixture(t)
	userID := seedUser(t, st, "owner@example.com", "s3cret")

	user, err := svc.Profile(context.Background(), userID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	if _, err := svc.Profile(context.Background(), userID+100); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing user error = %v, want not found", err)
	}
}
