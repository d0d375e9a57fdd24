package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/utils"
)

func newUser(username, email string) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Email:    email,
		Role:     "user",
		Status:   "active",
		Sessions: []primitive.ObjectID{},
	}
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	alice := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, alice))

	t.Run("duplicate email conflicts case-insensitively", func(t *testing.T) {
		err := repo.Create(ctx, newUser("other", "ALICE@example.com"))
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		err := repo.Create(ctx, newUser("alice", "alice2@example.com"))
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, primitive.NewObjectID())
		require.Error(t, err)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})

	t.Run("reads return clones", func(t *testing.T) {
		got, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		got.Username = "mallory"

		again, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", again.Username)
	})

	t.Run("wallet adjustment accumulates", func(t *testing.T) {
		require.NoError(t, repo.AdjustWallet(ctx, alice.ID, 50))
		require.NoError(t, repo.AdjustWallet(ctx, alice.ID, -20))
		got, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 30.0, got.Wallet)
	})
}

func TestMemoryUserPagination(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, newUser(
			fmt.Sprintf("user%02d", i), fmt.Sprintf("user%02d@example.com", i))))
	}

	page1, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "user00", page1[0].Username)

	page3, total, err := repo.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page3, 5)
	assert.Equal(t, "user20", page3[0].Username)

	t.Run("page past the end is empty", func(t *testing.T) {
		empty, total, err := repo.List(ctx, 9, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
		assert.Empty(t, empty)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	userID := primitive.NewObjectID()
	listenerID := primitive.NewObjectID()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mk := func(sid, status, typ, payment string, offset time.Duration) *models.Session {
		return &models.Session{
			ID:            primitive.NewObjectID(),
			SessionID:     sid,
			User:          userID,
			Listener:      listenerID,
			Type:          typ,
			StartTime:     base.Add(offset),
			Status:        status,
			PaymentStatus: payment,
			Amount:        100,
		}
	}

	require.NoError(t, repo.Create(ctx, mk("S1", "completed", "chat", "paid", 0)))
	require.NoError(t, repo.Create(ctx, mk("S2", "scheduled", "call", "pending", time.Hour)))
	require.NoError(t, repo.Create(ctx, mk("S3", "completed", "video", "paid", 2*time.Hour)))

	t.Run("duplicate sessionId conflicts", func(t *testing.T) {
		err := repo.Create(ctx, mk("S1", "scheduled", "chat", "pending", 3*time.Hour))
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("status filter", func(t *testing.T) {
		got, total, err := repo.List(ctx, models.SessionFilter{Status: "completed", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("type and payment filters compose", func(t *testing.T) {
		got, total, err := repo.List(ctx, models.SessionFilter{
			Type: "video", PaymentStatus: "paid", Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "S3", got[0].SessionID)
	})

	t.Run("default sort is newest first", func(t *testing.T) {
		got, _, err := repo.List(ctx, models.SessionFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "S3", got[0].SessionID)
		assert.Equal(t, "S1", got[2].SessionID)
	})

	t.Run("ascending order flips the sort", func(t *testing.T) {
		got, _, err := repo.List(ctx, models.SessionFilter{Order: 1, Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "S1", got[0].SessionID)
	})

	t.Run("find by participant", func(t *testing.T) {
		got, err := repo.FindByParticipant(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		none, err := repo.FindByParticipant(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete many", func(t *testing.T) {
		all, _, err := repo.List(ctx, models.SessionFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		ids := []primitive.ObjectID{all[0].ID, all[1].ID}
		require.NoError(t, repo.DeleteMany(ctx, ids))

		remaining, total, err := repo.List(ctx, models.SessionFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, remaining, 1)
	})
}

func TestDetachSessions(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	sessionA := primitive.NewObjectID()
	sessionB := primitive.NewObjectID()

	bob := newUser("bob", "bob@example.com")
	bob.Sessions = []primitive.ObjectID{sessionA, sessionB}
	require.NoError(t, repo.Create(ctx, bob))

	require.NoError(t, repo.DetachSessions(ctx,
		[]primitive.ObjectID{bob.ID}, []primitive.ObjectID{sessionA}))

	got, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{sessionB}, got.Sessions)

	t.Run("unknown users are skipped", func(t *testing.T) {
		require.NoError(t, repo.DetachSessions(ctx,
			[]primitive.ObjectID{primitive.NewObjectID()}, []primitive.ObjectID{sessionB}))
	})
}

func TestMemoryRoleRepositoryOrder(t *testing.T) {
	repo := NewMemoryRoleRepository()
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for i, name := range names {
		require.NoError(t, repo.Create(ctx, &models.Role{
			ID:          fmt.Sprintf("role-%d", i),
			Name:        name,
			Permissions: models.DefaultPermissions(),
		}))
	}

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	for i, role := range roles {
		assert.Equal(t, names[i], role.Name)
	}

	t.Run("deletion preserves the remaining order", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "role-1"))
		roles, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, "First", roles[0].Name)
		assert.Equal(t, "Third", roles[1].Name)
	})

	t.Run("rename collision on update conflicts", func(t *testing.T) {
		role, err := repo.GetByID(ctx, "role-0")
		require.NoError(t, err)
		role.Name = "third"
		err = repo.Update(ctx, role)
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})
}
