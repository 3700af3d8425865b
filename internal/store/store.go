// Package store is the entity store: transactional persistence for users,
// organizations, roles, and members. It returns sentinel errors that the
// service layer translates into the domain error taxonomy.
package store

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by the repository. Postgres constraint violations
// are translated into these so callers never match on SQLSTATE codes.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateMember      = errors.New("member already exists")
	ErrRoleNotFound         = errors.New("role not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrUserNotFound         = errors.New("user not found")
)

// Lifecycle status codes shared by users, organizations, and members.
// New organizations are created Active at signup; everything else defaults
// to Inactive at the storage layer.
const (
	StatusInactive = 0
	StatusActive   = 1
)

// OwnerRoleName is the default role created for the signing-up user.
const OwnerRoleName = "tenant"

// User is an account. Email is globally unique with case-sensitive matching.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Profile      map[string]any
	Status       int
	Settings     map[string]any
	CreatedAt    int64
	UpdatedAt    int64
}

// Organization is a tenant. Names are not unique.
type Organization struct {
	ID        int64
	Name      string
	Status    int
	Personal  bool
	Settings  map[string]any
	CreatedAt int64
	UpdatedAt int64
}

// Role is a named role owned by exactly one organization. Deleting the
// organization cascades to its roles.
type Role struct {
	ID          int64
	Name        string
	Description string
	OrgID       int64
}

// Member binds a user to an organization with a role. At most one member row
// exists per (org, user) pair; deleting any parent cascades to the row.
type Member struct {
	ID        int64
	OrgID     int64
	UserID    int64
	RoleID    int64
	Status    int
	Settings  map[string]any
	CreatedAt int64
	UpdatedAt int64
}

// MemberDetail is a member row joined with its user email and role name,
// used for membership listings.
type MemberDetail struct {
	Member
	Email    string
	RoleName string
}

// Store is the persistence interface the services depend on. *Repository
// implements it against Postgres; storetest.Store implements it in memory.
type Store interface {
	// InTx runs fn inside a single transaction. The transaction commits only
	// if fn returns nil; any error rolls back every write fn performed.
	// Nested calls join the surrounding transaction.
	InTx(ctx context.Context, fn func(Store) error) error

	CreateUser(ctx context.Context, email, passwordHash string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id int64) (User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error

	CreateOrganization(ctx context.Context, name string, status int, personal bool) (Organization, error)
	OrganizationByID(ctx context.Context, id int64) (Organization, error)

	CreateRole(ctx context.Context, orgID int64, name, description string) (Role, error)

	CreateMember(ctx context.Context, orgID, userID, roleID int64) (Member, error)
	MemberByOrgUser(ctx context.Context, orgID, userID int64) (Member, error)
	UpdateMemberRole(ctx context.Context, orgID, userID, roleID int64) error
	DeleteMember(ctx context.Context, orgID, userID int64) error
	ListMembers(ctx context.Context, orgID int64) ([]MemberDetail, error)
}
