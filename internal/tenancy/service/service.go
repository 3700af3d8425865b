// Package service implements the tenancy lifecycle: the multi-step signup
// that creates an account, its organization, the owner role, and the owner
// membership as one atomic unit.
package service

import (
	"context"
	"errors"

	"tenantcore/internal/credentials"
	"tenantcore/internal/events"
	"tenantcore/internal/store"
	"tenantcore/platform/apperr"
	"tenantcore/platform/logger"
)

const msgEmailTaken = "email already registered"

type Service struct {
	store store.Store
	bus   events.Bus
	log   *logger.Logger
}

func New(st store.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: st, bus: bus, log: log}
}

// SignUpResult identifies the records created by a successful signup.
type SignUpResult struct {
	UserID         int64
	OrganizationID int64
}

// SignUp registers a new tenant: user, organization (active), the "tenant"
// owner role, and the member row binding them. All five writes happen in one
// transaction; any failure rolls back every prior write so no org ever
// exists without its owner.
func (s *Service) SignUp(ctx context.Context, email, password, organizationName string) (SignUpResult, error) {
	if email == "" {
		return SignUpResult{}, apperr.Validation("email is required")
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		if errors.Is(err, credentials.ErrEmptyPassword) {
			return SignUpResult{}, apperr.Validation("password is required")
		}
		return SignUpResult{}, apperr.Wrap(apperr.KindInternal, "could not process password", err)
	}

	var result SignUpResult
	err = s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.UserByEmail(ctx, email); err == nil {
			return apperr.Conflict(msgEmailTaken)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		user, err := tx.CreateUser(ctx, email, hash)
		if err != nil {
			return err
		}

		org, err := tx.CreateOrganization(ctx, organizationName, store.StatusActive, false)
		if err != nil {
			return err
		}

		role, err := tx.CreateRole(ctx, org.ID, store.OwnerRoleName, "organization owner")
		if err != nil {
			return err
		}

		if _, err := tx.CreateMember(ctx, org.ID, user.ID, role.ID); err != nil {
			return err
		}

		result = SignUpResult{UserID: user.ID, OrganizationID: org.ID}
		return nil
	})
	if err != nil {
		var domainErr *apperr.Error
		if errors.As(err, &domainErr) {
			return SignUpResult{}, domainErr
		}
		// The loser of a concurrent signup race hits the unique index on
		// email inside the transaction.
		if errors.Is(err, store.ErrDuplicateEmail) {
			return SignUpResult{}, apperr.Conflict(msgEmailTaken)
		}
		s.log.DatabaseError("tenancy.sign_up", err)
		return SignUpResult{}, apperr.Wrap(apperr.KindInternal, "could not complete signup", err)
	}

	s.log.AuthEvent("sign_up", email, true, "")
	if s.bus != nil {
		s.bus.Publish(ctx, events.TenantSignedUp{
			BaseEvent:      events.NewBaseEvent(),
			UserID:         result.UserID,
			OrganizationID: result.OrganizationID,
			Email:          email,
		})
	}

	return result, nil
}
