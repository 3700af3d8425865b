package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tenantcore/internal/credentials"
	"tenantcore/internal/events"
	"tenantcore/internal/store"
	"tenantcore/internal/store/storetest"
	"tenantcore/platform/apperr"
	"tenantcore/platform/logger"
)

// recordingBus captures published events synchronously so tests can assert
// on them without racing the async in-memory bus.
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

func newService(st store.Store, bus events.Bus) *Service {
	return New(st, bus, logger.New("test"))
}

func TestSignUpCreatesTenant(t *testing.T) {
	st := storetest.New()
	bus := &recordingBus{}
	svc := newService(st, bus)

	result, err := svc.SignUp(context.Background(), "owner@example.com", "s3cret", "Acme")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if result.UserID == 0 || result.OrganizationID == 0 {
		t.Fatalf("expected non-zero ids, got %+v", result)
	}

	user, err := st.UserByID(context.Background(), result.UserID)
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Errorf("email = %q", user.Email)
	}
	if user.PasswordHash == "s3cret" {
		t.Error("password stored in plaintext")
	}
	if !credentials.VerifyPassword("s3cret", user.PasswordHash) {
		t.Error("stored hash does not verify the password")
	}

	org, err := st.OrganizationByID(context.Background(), result.OrganizationID)
	if err != nil {
		t.Fatalf("organization not persisted: %v", err)
	}
	if org.Status != store.StatusActive {
		t.Errorf("organization status = %d, want active", org.Status)
	}
	if org.Personal {
		t.Error("signup organization should not be personal")
	}

	member, err := st.MemberByOrgUser(context.Background(), result.OrganizationID, result.UserID)
	if err != nil {
		t.Fatalf("owner membership not persisted: %v", err)
	}
	role, ok := st.Roles[member.RoleID]
	if !ok {
		t.Fatalf("member role %d not persisted", member.RoleID)
	}
	if role.Name != store.OwnerRoleName {
		t.Errorf("owner role name = %q, want %q", role.Name, store.OwnerRoleName)
	}
	if role.OrgID != result.OrganizationID {
		t.Errorf("owner role org = %d, want %d", role.OrgID, result.OrganizationID)
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	signedUp, ok := published[0].(events.TenantSignedUp)
	if !ok {
		t.Fatalf("published event is %T", published[0])
	}
	if signedUp.UserID != result.UserID || signedUp.OrganizationID != result.OrganizationID {
		t.Errorf("event ids = %+v, want %+v", signedUp, result)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	st := storetest.New()
	svc := newService(st, nil)

	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "owner@example.com", "s3cret", "Acme"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}

	_, err := svc.SignUp(ctx, "owner@example.com", "other", "Globex")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate signup error = %v, want conflict", err)
	}

	if got := len(st.Organizations); got != 1 {
		t.Errorf("organizations = %d, want 1 (duplicate must not create another)", got)
	}
}

func TestSignUpEmailIsCaseSensitive(t *testing.T) {
	st := storetest.New()
	svc := newService(st, nil)

	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "owner@example.com", "s3cret", "Acme"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	if _, err := svc.SignUp(ctx, "Owner@example.com", "s3cret", "Globex"); err != nil {
		t.Fatalf("differently-cased email rejected: %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := newService(storetest.New(), nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "", "s3cret", "Acme"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("empty email error = %v, want validation", err)
	}
	if _, err := svc.SignUp(ctx, "owner@example.com", "", "Acme"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("empty password error = %v, want validation", err)
	}
}

func TestSignUpRollsBackOnFailure(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*storetest.Store)
	}{
		{"organization insert fails", func(s *storetest.Store) { s.CreateOrganizationErr = errors.New("boom") }},
		{"role insert fails", func(s *storetest.Store) { s.CreateRoleErr = errors.New("boom") }},
		{"member insert fails", func(s *storetest.Store) { s.CreateMemberErr = errors.New("boom") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := storetest.New()
			tc.setup(st)
			bus := &recordingBus{}
			svc := newService(st, bus)

			_, err := svc.SignUp(context.Background(), "owner@example.com", "s3cret", "Acme")
			if !apperr.Is(err, apperr.KindInternal) {
				t.Fatalf("error = %v, want internal", err)
			}

			if len(st.Users) != 0 || len(st.Organizations) != 0 || len(st.Roles) != 0 || len(st.Members) != 0 {
				t.Errorf("partial state survived rollback: users=%d orgs=%d roles=%d members=%d",
					len(st.Users), len(st.Organizations), len(st.Roles), len(st.Members))
			}
			if len(bus.published()) != 0 {
				t.Error("event published for failed signup")
			}
		})
	}
}

func TestSignUpFailureDoesNotLeakCause(t *testing.T) {
	st := storetest.New()
	st.CreateUserErr = errors.New("connection refused host=10.0.0.5")
	svc := newService(st, nil)

	_, err := svc.SignUp(context.Background(), "owner@example.com", "s3cret", "Acme")
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("error = %v, want internal", err)
	}
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("error is %T, want *apperr.Error", err)
	}
	if domainErr.Message != "could not complete signup" {
		t.Errorf("message = %q leaks internals", domainErr.Message)
	}
}
