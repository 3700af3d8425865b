package service

import (
	"context"
	"sync"
	"testing"

	"tenantcore/internal/credentials"
	"tenantcore/internal/events"
	"tenantcore/internal/store"
	"tenantcore/internal/store/storetest"
	"tenantcore/platform/apperr"
	"tenantcore/platform/logger"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.events
}

type fixture struct {
	svc    *Service
	st     *storetest.Store
	bus    *recordingBus
	orgID  int64
	roleID int64
}

// newFixture seeds one organization with a role so invites have a target.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := storetest.New()
	bus := &recordingBus{}

	ctx := context.Background()
	org, err := st.CreateOrganization(ctx, "Acme", store.StatusActive, false)
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	role, err := st.CreateRole(ctx, org.ID, "member", "regular member")
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	return &fixture{
		svc:    New(st, bus, logger.New("test")),
		st:     st,
		bus:    bus,
		orgID:  org.ID,
		roleID: role.ID,
	}
}

func (f *fixture) seedUser(t *testing.T, email string) int64 {
	t.Helper()
	user, err := f.st.CreateUser(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}

func TestInvite(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t, "invitee@example.com")

	member, err := f.svc.Invite(context.Background(), f.orgID, "invitee@example.com", f.roleID)
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if member.OrgID != f.orgID || member.UserID != userID || member.RoleID != f.roleID {
		t.Errorf("member = %+v", member)
	}

	published := f.bus.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	invited, ok := published[0].(events.MemberInvited)
	if !ok {
		t.Fatalf("published event is %T", published[0])
	}
	if invited.Email != "invitee@example.com" || invited.OrganizationName != "Acme" {
		t.Errorf("event = %+v", invited)
	}
}

func TestInviteUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Invite(context.Background(), f.orgID, "nobody@example.com", f.roleID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
	if len(f.bus.published()) != 0 {
		t.Error("event published for failed invite")
	}
}

func TestInviteDuplicateMember(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "invitee@example.com")

	ctx := context.Background()
	if _, err := f.svc.Invite(ctx, f.orgID, "invitee@example.com", f.roleID); err != nil {
		t.Fatalf("first Invite: %v", err)
	}
	if _, err := f.svc.Invite(ctx, f.orgID, "invitee@example.com", f.roleID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate invite error = %v, want conflict", err)
	}
}

func TestInviteMissingReferences(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "invitee@example.com")
	ctx := context.Background()

	if _, err := f.svc.Invite(ctx, f.orgID, "invitee@example.com", f.roleID+99); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown role error = %v, want not found", err)
	}
	if _, err := f.svc.Invite(ctx, f.orgID+99, "invitee@example.com", f.roleID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown organization error = %v, want not found", err)
	}
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t, "invitee@example.com")
	ctx := context.Background()

	if _, err := f.svc.Invite(ctx, f.orgID, "invitee@example.com", f.roleID); err != nil {
		t.Fatalf("Invite: %v", err)
	}

	if err := f.svc.Remove(ctx, f.orgID, userID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := f.st.MemberByOrgUser(ctx, f.orgID, userID); err == nil {
		t.Error("member still present after removal")
	}

	if err := f.svc.Remove(ctx, f.orgID, userID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second removal error = %v, want not found", err)
	}
}

func TestUpdateRole(t *testing.T) {
	f := newFixture(t)
	userID := f.seedUser(t, "invitee@example.com")
	ctx := context.Background()

	if _, err := f.svc.Invite(ctx, f.orgID, "invitee@example.com", f.roleID); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	admin, err := f.st.CreateRole(ctx, f.orgID, "admin", "")
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	if err := f.svc.UpdateRole(ctx, f.orgID, userID, admin.ID); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	member, err := f.st.MemberByOrgUser(ctx, f.orgID, userID)
	if err != nil {
		t.Fatalf("MemberByOrgUser: %v", err)
	}
	if member.RoleID != admin.ID {
		t.Errorf("role = %d, want %d", member.RoleID, admin.ID)
	}

	if err := f.svc.UpdateRole(ctx, f.orgID, userID+99, admin.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown member error = %v, want not found", err)
	}
	if err := f.svc.UpdateRole(ctx, f.orgID, userID, admin.ID+99); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown role error = %v, want not found", err)
	}
}

func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "a@example.com")
	f.seedUser(t, "b@example.com")

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := f.svc.Invite(ctx, f.orgID, email, f.roleID); err != nil {
			t.Fatalf("Invite %s: %v", email, err)
		}
	}

	members, err := f.svc.List(ctx, f.orgID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("listed %d members, want 2", len(members))
	}
	for _, m := range members {
		if m.Email == "" || m.RoleName != "member" {
			t.Errorf("member detail missing join data: %+v", m)
		}
	}

	empty, err := f.svc.List(ctx, f.orgID+99)
	if err != nil {
		t.Fatalf("List empty org: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("listed %d members for unknown org, want 0", len(empty))
	}
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hash, err := credentials.HashPassword("old-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := f.st.CreateUser(ctx, "owner@example.com", hash)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := f.svc.ResetPassword(ctx, "owner@example.com", "new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	updated, err := f.st.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if credentials.VerifyPassword("old-password", updated.PasswordHash) {
		t.Error("old password still verifies")
	}
	if !credentials.VerifyPassword("new-password", updated.PasswordHash) {
		t.Error("new password does not verify")
	}
}

func TestResetPasswordErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "owner@example.com")

	if err := f.svc.ResetPassword(ctx, "nobody@example.com", "new-password"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown email error = %v, want not found", err)
	}
	if err := f.svc.ResetPassword(ctx, "owner@example.com", ""); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("empty password error = %v, want validation", err)
	}
}
