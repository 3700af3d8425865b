// Package service implements membership management: inviting existing users
// into organizations, removing them, changing their role, and the account
// password reset flow.
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

type Service struct {
	store store.Store
	bus   events.Bus
	log   *logger.Logger
}

func New(st store.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: st, bus: bus, log: log}
}

// Invite adds an existing user to an organization with the given role.
// The invited user is looked up by email; the membership insert itself is
// transactional and relies on the store's constraints for role and
// organization existence.
func (s *Service) Invite(ctx context.Context, orgID int64, email string, roleID int64) (store.Member, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Member{}, apperr.NotFound("user not found")
		}
		s.log.DatabaseError("membership.invite", err)
		return store.Member{}, apperr.Wrap(apperr.KindInternal, "could not invite member", err)
	}

	var member store.Member
	err = s.store.InTx(ctx, func(tx store.Store) error {
		m, err := tx.CreateMember(ctx, orgID, user.ID, roleID)
		if err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateMember):
			return store.Member{}, apperr.Conflict("user is already a member of this organization")
		case errors.Is(err, store.ErrRoleNotFound):
			return store.Member{}, apperr.NotFound("role not found")
		case errors.Is(err, store.ErrOrganizationNotFound):
			return store.Member{}, apperr.NotFound("organization not found")
		case errors.Is(err, store.ErrUserNotFound):
			return store.Member{}, apperr.NotFound("user not found")
		}
		s.log.DatabaseError("membership.invite", err)
		return store.Member{}, apperr.Wrap(apperr.KindInternal, "could not invite member", err)
	}

	// Organization name is decoration for the notification email; a lookup
	// failure here must not fail the committed invite.
	orgName := ""
	if org, err := s.store.OrganizationByID(ctx, orgID); err == nil {
		orgName = org.Name
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.MemberInvited{
			BaseEvent:        events.NewBaseEvent(),
			MemberID:         member.ID,
			OrganizationID:   orgID,
			UserID:           user.ID,
			RoleID:           roleID,
			Email:            user.Email,
			OrganizationName: orgName,
		})
	}

	return member, nil
}

// Remove deletes the membership binding the user to the organization.
func (s *Service) Remove(ctx context.Context, orgID, userID int64) error {
	err := s.store.InTx(ctx, func(tx store.Store) error {
		return tx.DeleteMember(ctx, orgID, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("member not found")
		}
		s.log.DatabaseError("membership.remove", err)
		return apperr.Wrap(apperr.KindInternal, "could not remove member", err)
	}
	return nil
}

// UpdateRole reassigns the member's role within the organization.
func (s *Service) UpdateRole(ctx context.Context, orgID, userID, roleID int64) error {
	err := s.store.InTx(ctx, func(tx store.Store) error {
		return tx.UpdateMemberRole(ctx, orgID, userID, roleID)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return apperr.NotFound("member not found")
		case errors.Is(err, store.ErrRoleNotFound):
			return apperr.NotFound("role not found")
		}
		s.log.DatabaseError("membership.update_role", err)
		return apperr.Wrap(apperr.KindInternal, "could not update member role", err)
	}
	return nil
}

// List returns the organization's members joined with email and role name.
func (s *Service) List(ctx context.Context, orgID int64) ([]store.MemberDetail, error) {
	members, err := s.store.ListMembers(ctx, orgID)
	if err != nil {
		s.log.DatabaseError("membership.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list members", err)
	}
	return members, nil
}

// ResetPassword replaces the password of the account with the given email.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		s.log.DatabaseError("membership.reset_password", err)
		return apperr.Wrap(apperr.KindInternal, "could not reset password", err)
	}

	hash, err := credentials.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, credentials.ErrEmptyPassword) {
			return apperr.Validation("password is required")
		}
		return apperr.Wrap(apperr.KindInternal, "could not process password", err)
	}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		return tx.UpdateUserPassword(ctx, user.ID, hash)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		s.log.DatabaseError("membership.reset_password", err)
		return apperr.Wrap(apperr.KindInternal, "could not reset password", err)
	}

	s.log.AuthEvent("reset_password", email, true, "")
	return nil
}
