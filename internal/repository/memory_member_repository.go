package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/team-directory/internal/domain"
	"github.com/spec-kit/team-directory/internal/validation"
	apperrors "github.com/spec-kit/team-directory/pkg/util"
)

// memoryMemberRepository keeps members in process memory. It honors the same
// contract as the Postgres implementation, including atomic uniqueness, and
// backs local development (no POSTGRES_DSN) and tests.
type memoryMemberRepository struct {
	mu      sync.Mutex
	members map[string]*storedMember
	seq     int64
}

type storedMember struct {
	member domain.Member
	seq    int64
}

// NewMemoryMemberRepository returns an empty in-memory repository.
func NewMemoryMemberRepository() MemberRepository {
	return &memoryMemberRepository{members: make(map[string]*storedMember)}
}

func (r *memoryMemberRepository) Create(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(member.Email, member.Phone, ""); err != nil {
		return err
	}

	member.ID = uuid.NewString()
	member.DateJoined = time.Now().UTC()
	r.seq++
	r.members[member.ID] = &storedMember{member: *member, seq: r.seq}
	return nil
}

func (r *memoryMemberRepository) Update(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.members[member.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkUnique(member.Email, member.Phone, member.ID); err != nil {
		return err
	}

	updated := stored.member
	updated.FirstName = member.FirstName
	updated.LastName = member.LastName
	updated.Email = member.Email
	updated.Phone = member.Phone
	updated.Role = member.Role
	stored.member = updated
	*member = updated
	return nil
}

func (r *memoryMemberRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.members, id)
	return nil
}

func (r *memoryMemberRepository) GetByID(_ context.Context, id string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	member := stored.member
	return &member, nil
}

func (r *memoryMemberRepository) FindByEmail(_ context.Context, email string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.members {
		if strings.EqualFold(stored.member.Email, email) {
			member := stored.member
			return &member, nil
		}
	}
	return nil, nil
}

func (r *memoryMemberRepository) List(_ context.Context, filter MemberFilter) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]*storedMember, 0, len(r.members))
	for _, s := range r.members {
		if s.member.IsSuperuser && !filter.IncludeSuperusers {
			continue
		}
		stored = append(stored, s)
	}
	// date_joined descending; insertion order breaks ties
	sort.Slice(stored, func(i, j int) bool {
		if stored[i].member.DateJoined.Equal(stored[j].member.DateJoined) {
			return stored[i].seq > stored[j].seq
		}
		return stored[i].member.DateJoined.After(stored[j].member.DateJoined)
	})

	result := make([]domain.Member, 0, len(stored))
	for _, s := range stored {
		result = append(result, s.member)
	}
	return result, nil
}

func (r *memoryMemberRepository) checkUnique(email, phone, excludeID string) error {
	for id, stored := range r.members {
		if id == excludeID {
			continue
		}
		if strings.EqualFold(stored.member.Email, email) {
			return apperrors.NewUniqueViolation("email", validation.MsgEmailTaken)
		}
		if stored.member.Phone == phone {
			return apperrors.NewUniqueViolation("phone", validation.MsgPhoneTaken)
		}
	}
	return nil
}
