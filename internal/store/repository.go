package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// method works inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Repository implements Store against Postgres.
type Repository struct {
	pool *pgxpool.Pool
	q    DBTX
}

// New creates a repository over the given pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, q: pool}
}

// InTx runs fn in one transaction with guaranteed release: the deferred
// rollback is a no-op after a successful commit and undoes everything on any
// other exit path, including panics. A repository already bound to a
// transaction joins it instead of opening a second one.
func (r *Repository) InTx(ctx context.Context, fn func(Store) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Repository{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const userColumns = `id, email, password_hash, profile, status, settings, created_at, updated_at`

const createUserQuery = `
	INSERT INTO users (email, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $3)
	RETURNING ` + userColumns

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (User, error) {
	row := r.q.QueryRow(ctx, createUserQuery, email, passwordHash, time.Now().Unix())
	return scanUser(row)
}

const userByEmailQuery = `
	SELECT ` + userColumns + `
	FROM users WHERE email = $1`

func (r *Repository) UserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.q.QueryRow(ctx, userByEmailQuery, email))
}

const userByIDQuery = `
	SELECT ` + userColumns + `
	FROM users WHERE id = $1`

func (r *Repository) UserByID(ctx context.Context, id int64) (User, error) {
	return scanUser(r.q.QueryRow(ctx, userByIDQuery, id))
}

const updateUserPasswordQuery = `
	UPDATE users SET password_hash = $2, updated_at = $3
	WHERE id = $1`

func (r *Repository) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.q.Exec(ctx, updateUserPasswordQuery, userID, passwordHash, time.Now().Unix())
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const organizationColumns = `id, name, status, personal, settings, created_at, updated_at`

const createOrganizationQuery = `
	INSERT INTO organizations (name, status, personal, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	RETURNING ` + organizationColumns

func (r *Repository) CreateOrganization(ctx context.Context, name string, status int, personal bool) (Organization, error) {
	row := r.q.QueryRow(ctx, createOrganizationQuery, name, status, personal, time.Now().Unix())
	return scanOrganization(row)
}

const organizationByIDQuery = `
	SELECT ` + organizationColumns + `
	FROM organizations WHERE id = $1`

func (r *Repository) OrganizationByID(ctx context.Context, id int64) (Organization, error) {
	return scanOrganization(r.q.QueryRow(ctx, organizationByIDQuery, id))
}

const createRoleQuery = `
	INSERT INTO roles (name, description, org_id)
	VALUES ($1, NULLIF($2, ''), $3)
	RETURNING id, name, COALESCE(description, ''), org_id`

func (r *Repository) CreateRole(ctx context.Context, orgID int64, name, description string) (Role, error) {
	var role Role
	err := r.q.QueryRow(ctx, createRoleQuery, name, description, orgID).
		Scan(&role.ID, &role.Name, &role.Description, &role.OrgID)
	if err != nil {
		return Role{}, translateError(err)
	}
	return role, nil
}

const memberColumns = `id, org_id, user_id, role_id, status, settings, created_at, updated_at`

const createMemberQuery = `
	INSERT INTO members (org_id, user_id, role_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	RETURNING ` + memberColumns

func (r *Repository) CreateMember(ctx context.Context, orgID, userID, roleID int64) (Member, error) {
	row := r.q.QueryRow(ctx, createMemberQuery, orgID, userID, roleID, time.Now().Unix())
	return scanMember(row)
}

const memberByOrgUserQuery = `
	SELECT ` + memberColumns + `
	FROM members WHERE org_id = $1 AND user_id = $2`

func (r *Repository) MemberByOrgUser(ctx context.Context, orgID, userID int64) (Member, error) {
	return scanMember(r.q.QueryRow(ctx, memberByOrgUserQuery, orgID, userID))
}

const updateMemberRoleQuery = `
	UPDATE members SET role_id = $3, updated_at = $4
	WHERE org_id = $1 AND user_id = $2`

func (r *Repository) UpdateMemberRole(ctx context.Context, orgID, userID, roleID int64) error {
	tag, err := r.q.Exec(ctx, updateMemberRoleQuery, orgID, userID, roleID, time.Now().Unix())
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteMemberQuery = `
	DELETE FROM members
	WHERE org_id = $1 AND user_id = $2`

func (r *Repository) DeleteMember(ctx context.Context, orgID, userID int64) error {
	tag, err := r.q.Exec(ctx, deleteMemberQuery, orgID, userID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const listMembersQuery = `
	SELECT m.id, m.org_id, m.user_id, m.role_id, m.status, m.settings, m.created_at, m.updated_at,
	       u.email, r.name
	FROM members m
	JOIN users u ON u.id = m.user_id
	JOIN roles r ON r.id = m.role_id
	WHERE m.org_id = $1
	ORDER BY m.created_at, m.id`

func (r *Repository) ListMembers(ctx context.Context, orgID int64) ([]MemberDetail, error) {
	rows, err := r.q.Query(ctx, listMembersQuery, orgID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var details []MemberDetail
	for rows.Next() {
		var d MemberDetail
		if err := rows.Scan(
			&d.ID, &d.OrgID, &d.UserID, &d.RoleID, &d.Status, &d.Settings, &d.CreatedAt, &d.UpdatedAt,
			&d.Email, &d.RoleName,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Profile, &u.Status, &u.Settings, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, translateError(err)
	}
	return u, nil
}

func scanOrganization(row pgx.Row) (Organization, error) {
	var o Organization
	err := row.Scan(&o.ID, &o.Name, &o.Status, &o.Personal, &o.Settings, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Organization{}, translateError(err)
	}
	return o, nil
}

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.OrgID, &m.UserID, &m.RoleID, &m.Status, &m.Settings, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Member{}, translateError(err)
	}
	return m, nil
}

// Postgres error codes relevant to this schema.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors to the package sentinels. Constraint
// names match migrations/00001_create_identity_tables.sql.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrDuplicateEmail
		case "members_org_id_user_id_key":
			return ErrDuplicateMember
		}
	case pgForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "members_role_id_fkey":
			return ErrRoleNotFound
		case "members_org_id_fkey":
			return ErrOrganizationNotFound
		case "members_user_id_fkey":
			return ErrUserNotFound
		}
	}
	return err
}
