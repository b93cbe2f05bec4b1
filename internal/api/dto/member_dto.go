package dto

import (
	"time"

	"github.com/spec-kit/team-directory/internal/domain"
)

// MemberResponse is the directory-facing shape of a member. Credentials and
// bootstrap flags are never serialized.
type MemberResponse struct {
	ID         string      `json:"id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Role       domain.Role `json:"role"`
	DateJoined time.Time   `json:"date_joined"`
}

// NewMemberResponse maps a domain member onto the response shape.
func NewMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:         m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Phone:      m.Phone,
		Role:       m.Role,
		DateJoined: m.DateJoined,
	}
}
