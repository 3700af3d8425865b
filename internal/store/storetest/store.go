// Package storetest provides an in-memory store.Store for service tests.
// It mirrors the Postgres repository's semantics: sentinel errors for
// constraint violations and transactional rollback via state snapshots.
package storetest

import (
	"context"
	"sync"
	"time"

	"tenantcore/internal/store"
)

// Store is an in-memory implementation of store.Store.
// The exported error fields inject failures into specific operations so
// tests can exercise rollback paths.
type Store struct {
	mu sync.Mutex

	Users         map[int64]store.User
	Organizations map[int64]store.Organization
	Roles         map[int64]store.Role
	Members       map[int64]store.Member

	nextID int64
	inTx   bool

	CreateUserErr         error
	CreateOrganizationErr error
	CreateRoleErr         error
	CreateMemberErr       error
	UpdateUserPasswordErr error
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		Users:         make(map[int64]store.User),
		Organizations: make(map[int64]store.Organization),
		Roles:         make(map[int64]store.Role),
		Members:       make(map[int64]store.Member),
	}
}

// InTx snapshots all tables, runs fn, and restores the snapshot if fn fails,
// matching the all-or-nothing contract of the real repository.
func (s *Store) InTx(_ context.Context, fn func(store.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	users := cloneTable(s.Users)
	orgs := cloneTable(s.Organizations)
	roles := cloneTable(s.Roles)
	members := cloneTable(s.Members)
	nextID := s.nextID

	s.inTx = true
	err := fn(s)
	s.inTx = false

	if err != nil {
		s.Users = users
		s.Organizations = orgs
		s.Roles = roles
		s.Members = members
		s.nextID = nextID
	}
	return err
}

func (s *Store) CreateUser(_ context.Context, email, passwordHash string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateUserErr != nil {
		return store.User{}, s.CreateUserErr
	}
	for _, u := range s.Users {
		if u.Email == email {
			return store.User{}, store.ErrDuplicateEmail
		}
	}

	now := time.Now().Unix()
	user := store.User{
		ID:           s.id(),
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      map[string]any{},
		Settings:     map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Users[user.ID] = user
	return user, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return store.User{}, store.ErrNotFound
}

func (s *Store) UserByID(_ context.Context, id int64) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.Users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, userID int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateUserPasswordErr != nil {
		return s.UpdateUserPasswordErr
	}
	u, ok := s.Users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().Unix()
	s.Users[userID] = u
	return nil
}

func (s *Store) CreateOrganization(_ context.Context, name string, status int, personal bool) (store.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateOrganizationErr != nil {
		return store.Organization{}, s.CreateOrganizationErr
	}

	now := time.Now().Unix()
	org := store.Organization{
		ID:        s.id(),
		Name:      name,
		Status:    status,
		Personal:  personal,
		Settings:  map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Organizations[org.ID] = org
	return org, nil
}

func (s *Store) OrganizationByID(_ context.Context, id int64) (store.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.Organizations[id]
	if !ok {
		return store.Organization{}, store.ErrNotFound
	}
	return org, nil
}

func (s *Store) CreateRole(_ context.Context, orgID int64, name, description string) (store.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateRoleErr != nil {
		return store.Role{}, s.CreateRoleErr
	}
	if _, ok := s.Organizations[orgID]; !ok {
		return store.Role{}, store.ErrOrganizationNotFound
	}

	role := store.Role{ID: s.id(), Name: name, Description: description, OrgID: orgID}
	s.Roles[role.ID] = role
	return role, nil
}

func (s *Store) CreateMember(_ context.Context, orgID, userID, roleID int64) (store.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateMemberErr != nil {
		return store.Member{}, s.CreateMemberErr
	}
	if _, ok := s.Organizations[orgID]; !ok {
		return store.Member{}, store.ErrOrganizationNotFound
	}
	if _, ok := s.Users[userID]; !ok {
		return store.Member{}, store.ErrUserNotFound
	}
	if _, ok := s.Roles[roleID]; !ok {
		return store.Member{}, store.ErrRoleNotFound
	}
	for _, m := range s.Members {
		if m.OrgID == orgID && m.UserID == userID {
			return store.Member{}, store.ErrDuplicateMember
		}
	}

	now := time.Now().Unix()
	member := store.Member{
		ID:        s.id(),
		OrgID:     orgID,
		UserID:    userID,
		RoleID:    roleID,
		Settings:  map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Members[member.ID] = member
	return member, nil
}

func (s *Store) MemberByOrgUser(_ context.Context, orgID, userID int64) (store.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.Members {
		if m.OrgID == orgID && m.UserID == userID {
			return m, nil
		}
	}
	return store.Member{}, store.ErrNotFound
}

func (s *Store) UpdateMemberRole(_ context.Context, orgID, userID, roleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.Roles[roleID]; !ok {
		return store.ErrRoleNotFound
	}
	for id, m := range s.Members {
		if m.OrgID == orgID && m.UserID == userID {
			m.RoleID = roleID
			m.UpdatedAt = time.Now().Unix()
			s.Members[id] = m
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteMember(_ context.Context, orgID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.Members {
		if m.OrgID == orgID && m.UserID == userID {
			delete(s.Members, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListMembers(_ context.Context, orgID int64) ([]store.MemberDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var details []store.MemberDetail
	for _, m := range s.Members {
		if m.OrgID != orgID {
			continue
		}
		d := store.MemberDetail{Member: m}
		if u, ok := s.Users[m.UserID]; ok {
			d.Email = u.Email
		}
		if r, ok := s.Roles[m.RoleID]; ok {
			d.RoleName = r.Name
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func cloneTable[V any](src map[int64]V) map[int64]V {
	dst := make(map[int64]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
