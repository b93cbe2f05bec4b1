package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/team-directory/internal/domain"
	"github.com/spec-kit/team-directory/internal/validation"
	apperrors "github.com/spec-kit/team-directory/pkg/util"
)

// MemberFilter defines query params for the directory listing.
type MemberFilter struct {
	IncludeSuperusers bool
}

// MemberRepository handles persistence for directory members. Uniqueness of
// email (case-insensitive) and phone is enforced atomically by the store, so
// concurrent duplicate writes resolve to exactly one success.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	// FindByEmail returns (nil, nil) when no member has the address.
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]domain.Member, error)
}

// Unique index names from migrations/0001_create_members.sql.
const (
	emailConstraint = "members_email_key"
	phoneConstraint = "members_phone_key"
)

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (first_name, last_name, email, phone, password_hash, role, is_superuser, is_staff, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, date_joined`

	err := r.pool.QueryRow(ctx, query,
		member.FirstName,
		member.LastName,
		member.Email,
		member.Phone,
		member.PasswordHash,
		member.Role,
		member.IsSuperuser,
		member.IsStaff,
		member.IsActive,
	).Scan(&member.ID, &member.DateJoined)
	return translateUnique(err)
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	const query = `
        UPDATE members SET first_name=$1, last_name=$2, email=$3, phone=$4, role=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		member.FirstName,
		member.LastName,
		member.Email,
		member.Phone,
		member.Role,
		member.ID,
	)
	if err != nil {
		return translateUnique(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, first_name, last_name, email, phone, password_hash, role, is_superuser, is_staff, is_active, date_joined
        FROM members WHERE id=$1`

	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.Email,
		&member.Phone,
		&member.PasswordHash,
		&member.Role,
		&member.IsSuperuser,
		&member.IsStaff,
		&member.IsActive,
		&member.DateJoined,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	const query = `
        SELECT id, first_name, last_name, email, phone, password_hash, role, is_superuser, is_staff, is_active, date_joined
        FROM members WHERE LOWER(email)=LOWER($1)`

	var member domain.Member
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.Email,
		&member.Phone,
		&member.PasswordHash,
		&member.Role,
		&member.IsSuperuser,
		&member.IsStaff,
		&member.IsActive,
		&member.DateJoined,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]domain.Member, error) {
	query := `
        SELECT id, first_name, last_name, email, phone, password_hash, role, is_superuser, is_staff, is_active, date_joined
        FROM members`
	if !filter.IncludeSuperusers {
		query += ` WHERE NOT is_superuser`
	}
	query += ` ORDER BY date_joined DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID,
			&member.FirstName,
			&member.LastName,
			&member.Email,
			&member.Phone,
			&member.PasswordHash,
			&member.Role,
			&member.IsSuperuser,
			&member.IsStaff,
			&member.IsActive,
			&member.DateJoined,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

// translateUnique maps Postgres unique violations (SQLSTATE 23505) onto the
// field-scoped duplicate errors the service reports to callers.
func translateUnique(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case emailConstraint:
		return apperrors.NewUniqueViolation("email", validation.MsgEmailTaken)
	case phoneConstraint:
		return apperrors.NewUniqueViolation("phone", validation.MsgPhoneTaken)
	}
	return err
}
