package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

func TestUserStore_EmptyByDefault(t *testing.T) {
	users, err := NewUserStore().Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserStore_SaveLoad_CopiesThroughJSON(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	in := []domain.UserRecord{domain.NewUserRecord("a@x.com", "p")}
	require.NoError(t, s.Save(ctx, in))

	in[0].Role = domain.RoleAdmin // caller mutation must not leak in

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.RoleUser, out[0].Role)

	out[0].Password = "changed"
	again, _ := s.Load(ctx)
	assert.Equal(t, "p", again[0].Password)
}

func TestUserStore_Corrupt_ReadsEmpty(t *testing.T) {
	s := NewUserStoreFromJSON([]byte("]["))

	users, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserStore_Raw_IsIndented(t *testing.T) {
	s := NewUserStore()
	require.NoError(t, s.Save(context.Background(), nil))
	assert.Equal(t, "[]", string(s.Raw()))
}

func TestSeedUsers_Idempotent(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	require.NoError(t, SeedUsers(ctx, s))
	require.NoError(t, SeedUsers(ctx, s))

	users, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	roles := map[string]domain.Role{}
	for _, u := range users {
		roles[u.Email] = u.Role
	}
	assert.Equal(t, domain.RoleAdmin, roles["admin@example.com"])
	assert.Equal(t, domain.RoleModerator, roles["moderator@example.com"])
	assert.Equal(t, domain.RoleUser, roles["user@example.com"])
}

func TestSeedUsers_KeepsExistingRecord(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, []domain.UserRecord{{Email: "admin@example.com", Password: "mine", Role: domain.RoleUser}}))

	require.NoError(t, SeedUsers(ctx, s))

	users, _ := s.Load(ctx)
	require.Len(t, users, 3)
	i := domain.FindByEmail(users, "admin@example.com")
	assert.Equal(t, "mine", users[i].Password)
	assert.Equal(t, domain.RoleUser, users[i].Role)
}
