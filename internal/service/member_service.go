package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/team-directory/internal/auth"
	"github.com/spec-kit/team-directory/internal/config"
	"github.com/spec-kit/team-directory/internal/domain"
	"github.com/spec-kit/team-directory/internal/repository"
	"github.com/spec-kit/team-directory/internal/validation"
	apperrors "github.com/spec-kit/team-directory/pkg/util"
)

// MemberService orchestrates directory operations: validation, persistence,
// and the delete authorization policy.
type MemberService struct {
	members    repository.MemberRepository
	bcryptCost int
}

// NewMemberService constructs the service.
func NewMemberService(cfg config.Config, members repository.MemberRepository) *MemberService {
	return &MemberService{members: members, bcryptCost: cfg.Auth.BcryptCost}
}

// Create validates the input and persists a new member. Directory entries get
// a generated credential; role defaults to Regular when omitted.
func (s *MemberService) Create(ctx context.Context, input validation.MemberInput) (*domain.Member, error) {
	if fieldErrs := validation.MemberInputErrors(input); fieldErrs != nil {
		return nil, apperrors.NewValidationError(fieldErrs.Details())
	}

	hash, err := auth.HashPassword(auth.GeneratePassword(), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	member := &domain.Member{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        validation.NormalizeEmail(input.Email),
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         input.RoleOrDefault(),
		IsActive:     true,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// Update replaces the editable fields of an existing member after running the
// same validation pipeline as Create. Uniqueness checks exclude the record
// itself, so re-submitting an unchanged email or phone never conflicts.
func (s *MemberService) Update(ctx context.Context, id string, input validation.MemberInput) (*domain.Member, error) {
	if fieldErrs := validation.MemberInputErrors(input); fieldErrs != nil {
		return nil, apperrors.NewValidationError(fieldErrs.Details())
	}

	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	member.FirstName = input.FirstName
	member.LastName = input.LastName
	member.Email = validation.NormalizeEmail(input.Email)
	member.Phone = input.Phone
	if input.Role != "" {
		member.Role = domain.Role(input.Role)
	}

	if err := s.members.Update(ctx, member); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// Delete removes a member. Only actors holding the Admin role may delete;
// the policy consults the acting user alone, never the target.
func (s *MemberService) Delete(ctx context.Context, actor auth.Capability, id string) error {
	if !auth.CanDelete(actor) {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.members.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches a single member.
func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// List returns the directory, newest joiners first. The bootstrap superuser
// is never part of the listing.
func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	members, err := s.members.List(ctx, repository.MemberFilter{IncludeSuperusers: false})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return members, nil
}

// BootstrapSuperuser ensures the deployment's single privileged account
// exists, creating it when absent. The account is marked by its superuser
// flags rather than a role, and it bypasses the directory form validation:
// the configured bootstrap identifier need not be a routable address.
// Safe to run on every startup; a concurrent create losing the uniqueness
// race is treated as success.
func (s *MemberService) BootstrapSuperuser(ctx context.Context, email, password string) (*domain.Member, error) {
	existing, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	member := &domain.Member{
		Email:        validation.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.RoleRegular,
		IsSuperuser:  true,
		IsStaff:      true,
		IsActive:     true,
	}
	if err := s.members.Create(ctx, member); err != nil {
		if apperrors.IsUniqueViolation(err) {
			winner, findErr := s.members.FindByEmail(ctx, email)
			if findErr != nil {
				return nil, apperrors.MapError(findErr)
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}
