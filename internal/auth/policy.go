package auth

import "github.com/spec-kit/team-directory/internal/domain"

// Capability captures everything the delete policy needs to know about the
// acting user. The target of the deletion is irrelevant.
type Capability struct {
	IsAuthenticated bool
	Role            domain.Role
}

// CapabilityFor derives the capability of an authenticated member.
func CapabilityFor(member *domain.Member) Capability {
	if member == nil {
		return Capability{}
	}
	return Capability{IsAuthenticated: true, Role: member.Role}
}

// CanDelete reports whether the acting user may delete directory members.
// Unauthenticated callers are rejected before role is consulted; among
// authenticated callers only the Admin role grants delete authority.
func CanDelete(actor Capability) bool {
	if !actor.IsAuthenticated {
		return false
	}
	return actor.Role == domain.RoleAdmin
}
