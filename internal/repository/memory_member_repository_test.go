package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/team-directory/internal/domain"
	apperrors "github.com/spec-kit/team-directory/pkg/util"
)

func newMember(email, phone string) *domain.Member {
	return &domain.Member{
		Email:        email,
		Phone:        phone,
		PasswordHash: "x",
		Role:         domain.RoleRegular,
		IsActive:     true,
	}
}

func TestMemoryCreateAssignsIdentity(t *testing.T) {
	repo := NewMemoryMemberRepository()
	member := newMember("stacy@x.com", "111-111-1111")

	require.NoError(t, repo.Create(context.Background(), member))
	assert.NotEmpty(t, member.ID)
	assert.False(t, member.DateJoined.IsZero())
}

func TestMemoryConcurrentDuplicateCreates(t *testing.T) {
	repo := NewMemoryMemberRepository()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newMember("same@x.com", fmt.Sprintf("111-111-%04d", i)))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, apperrors.IsUniqueViolation(err))
	}
	assert.Equal(t, 1, successes)
}

func TestMemoryEmailUniquenessCaseInsensitive(t *testing.T) {
	repo := NewMemoryMemberRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newMember("stacy@x.com", "111-111-1111")))

	err := repo.Create(ctx, newMember("STACY@X.COM", "222-222-2222"))
	require.Error(t, err)
	assert.True(t, apperrors.IsUniqueViolation(err))
}

func TestMemoryUpdateExcludesSelf(t *testing.T) {
	repo := NewMemoryMemberRepository()
	ctx := context.Background()

	member := newMember("stacy@x.com", "111-111-1111")
	require.NoError(t, repo.Create(ctx, member))

	// unchanged email and phone never conflict with the record itself
	require.NoError(t, repo.Update(ctx, member))

	other := newMember("jack@x.com", "222-222-2222")
	require.NoError(t, repo.Create(ctx, other))

	other.Phone = "111-111-1111"
	err := repo.Update(ctx, other)
	require.Error(t, err)
	assert.True(t, apperrors.IsUniqueViolation(err))
}

func TestMemoryMissingRows(t *testing.T) {
	repo := NewMemoryMemberRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Member{ID: "missing"}), pgx.ErrNoRows)

	found, err := repo.FindByEmail(ctx, "missing@x.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryFindByEmailCaseInsensitive(t *testing.T) {
	repo := NewMemoryMemberRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newMember("Stacy@X.com", "111-111-1111")))

	found, err := repo.FindByEmail(ctx, "stacy@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Stacy@X.com", found.Email)
}

func TestMemoryListFiltersAndOrders(t *testing.T) {
	repo := NewMemoryMemberRepository()
	ctx := context.Background()

	super := newMember("admin", "")
	super.IsSuperuser = true
	require.NoError(t, repo.Create(ctx, super))

	first := newMember("a@x.com", "111-111-1111")
	require.NoError(t, repo.Create(ctx, first))
	second := newMember("b@x.com", "222-222-2222")
	require.NoError(t, repo.Create(ctx, second))

	members, err := repo.List(ctx, MemberFilter{})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, second.ID, members[0].ID)
	assert.Equal(t, first.ID, members[1].ID)

	all, err := repo.List(ctx, MemberFilter{IncludeSuperusers: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
