package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CoderAnshul/AdDash/auth"
	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/config"
	"github.com/CoderAnshul/AdDash/handlers"
	"github.com/CoderAnshul/AdDash/metrics"
	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/repository"
	"github.com/CoderAnshul/AdDash/router"
	"github.com/CoderAnshul/AdDash/service"
)

type testEnv struct {
	repos    *repository.Repositories
	roles    *service.RoleService
	sessions *auth.Manager
	server   *httptest.Server
	redis    *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	store := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	repos := repository.NewMemoryRepositories()
	require.NoError(t, service.SeedRoles(ctx, repos.Roles))
	roles := service.NewRoleService(repos.Roles, zap.NewNop())

	cfg := &config.AuthConfig{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		SessionTimeout: 30 * time.Minute,
		TOTPIssuer:     "AdDash",
	}
	sessions := auth.NewManager(repos.Admins, store, cfg, zap.NewNop())

	m := metrics.New(func() float64 { return float64(sessions.Active()) })
	h := handlers.NewHandler(repos, roles, sessions, store, zap.NewNop(), cfg.TOTPIssuer)
	srv := httptest.NewServer(router.New(h, roles, cfg.JWTSecret, m))
	t.Cleanup(srv.Close)

	return &testEnv{repos: repos, roles: roles, sessions: sessions, server: srv, redis: mr}
}

// seedAdmin creates a staff account and returns its JWT
func (e *testEnv) seedAdmin(t *testing.T, email, role string) string {
	t.Helper()
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, e.repos.Admins.Create(ctx, &models.Admin{
		ID:       "admin-" + email,
		Name:     "Test Admin",
		Email:    email,
		Password: string(hashed),
		RoleName: role,
	}))

	resp, err := e.sessions.Login(ctx, email, "secret123")
	require.NoError(t, err)
	return resp.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestAuthGate(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token is unauthorized", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/users", "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/users", "not-a-jwt", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestPermissionGate(t *testing.T) {
	env := newTestEnv(t)
	supportToken := env.seedAdmin(t, "support@example.com", "Support")
	financeToken := env.seedAdmin(t, "finance@example.com", "Finance")

	t.Run("support is locked out of wallet payments", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/wallet/transactions", supportToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("finance reaches wallet payments", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/wallet/transactions", financeToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("support can view users but not delete them", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/users", supportToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, http.MethodDelete, "/api/users/"+primitive.NewObjectID().Hex(), supportToken, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("finance cannot manage roles", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/roles", financeToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown role denies everything", func(t *testing.T) {
		ghostToken := env.seedAdmin(t, "ghost@example.com", "NoSuchRole")
		resp := env.do(t, http.MethodGet, "/api/users", ghostToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestUserPaginationEnvelope(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t, "root@example.com", "SuperAdmin")
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, env.repos.Users.Create(ctx, &models.User{
			ID:       primitive.NewObjectID(),
			Username: fmt.Sprintf("user%02d", i),
			Email:    fmt.Sprintf("user%02d@example.com", i),
			Role:     "user",
			Status:   "active",
		}))
	}

	resp := env.do(t, http.MethodGet, "/api/users?page=2&limit=10", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status     int               `json:"status"`
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			CurrentPage  int `json:"current_page"`
			TotalPages   int `json:"total_pages"`
			ItemsPerPage int `json:"items_per_page"`
			TotalItems   int `json:"total_items"`
		} `json:"pagination"`
	}
	decodeBody(t, resp, &body)

	assert.Equal(t, http.StatusOK, body.Status)
	assert.Len(t, body.Data, 10)
	assert.Equal(t, 2, body.Pagination.CurrentPage)
	assert.Equal(t, 3, body.Pagination.TotalPages)
	assert.Equal(t, 10, body.Pagination.ItemsPerPage)
	assert.Equal(t, 25, body.Pagination.TotalItems)
}

func TestCascadeUserDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t, "root@example.com", "SuperAdmin")
	ctx := context.Background()

	user := &models.User{
		ID: primitive.NewObjectID(), Username: "carol", Email: "carol@example.com",
		Role: "user", Status: "active",
	}
	listener := &models.User{
		ID: primitive.NewObjectID(), Username: "dan", Email: "dan@example.com",
		Role: "listener", Status: "active",
	}
	require.NoError(t, env.repos.Users.Create(ctx, user))
	require.NoError(t, env.repos.Users.Create(ctx, listener))

	session := &models.Session{
		ID: primitive.NewObjectID(), SessionID: "S-100",
		User: user.ID, Listener: listener.ID,
		Type: "chat", StartTime: time.Now(), Status: "completed", PaymentStatus: "paid",
		Amount: 100,
	}
	require.NoError(t, env.repos.Sessions.Create(ctx, session))
	require.NoError(t, env.repos.Users.AttachSession(ctx, user.ID, session.ID))
	require.NoError(t, env.repos.Users.AttachSession(ctx, listener.ID, session.ID))

	resp := env.do(t, http.MethodDelete, "/api/users/"+user.ID.Hex(), token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("user is gone", func(t *testing.T) {
		_, err := env.repos.Users.GetByID(ctx, user.ID)
		assert.Error(t, err)
	})

	t.Run("shared sessions are deleted", func(t *testing.T) {
		_, err := env.repos.Sessions.GetByID(ctx, session.ID)
		assert.Error(t, err)
	})

	t.Run("counterpart holds no dangling reference", func(t *testing.T) {
		got, err := env.repos.Users.GetByID(ctx, listener.ID)
		require.NoError(t, err)
		assert.NotContains(t, got.Sessions, session.ID)
	})
}

func TestPromoteListener(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t, "root@example.com", "SuperAdmin")
	ctx := context.Background()

	user := &models.User{
		ID: primitive.NewObjectID(), Username: "eve", Email: "eve@example.com",
		Role: "user", Status: "active",
	}
	require.NoError(t, env.repos.Users.Create(ctx, user))

	payload := map[string]interface{}{
		"userId":    user.ID.Hex(),
		"expertise": []string{"anxiety", "relationships"},
		"commission": 20,
	}

	resp := env.do(t, http.MethodPost, "/api/listeners/promote", token, payload)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got, err := env.repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "listener", got.Role)

	t.Run("promoting twice is a bad request", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/listeners/promote", token, payload)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing expertise fails validation", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/listeners/promote", token, map[string]interface{}{
			"userId": primitive.NewObjectID().Hex(),
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRoleEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t, "root@example.com", "SuperAdmin")

	t.Run("duplicate then edit the copy", func(t *testing.T) {
		var list struct {
			Data []models.Role `json:"data"`
		}
		resp := env.do(t, http.MethodGet, "/api/roles?q=finance", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &list)
		require.Len(t, list.Data, 1)

		var created struct {
			Data models.Role `json:"data"`
		}
		resp = env.do(t, http.MethodPost, "/api/roles/"+list.Data[0].ID+"/duplicate", token, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &created)
		assert.Equal(t, "Finance (Copy)", created.Data.Name)
		assert.False(t, created.Data.IsSystem)
	})

	t.Run("system role update is forbidden", func(t *testing.T) {
		var list struct {
			Data []models.Role `json:"data"`
		}
		resp := env.do(t, http.MethodGet, "/api/roles?q=superadmin", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &list)
		require.Len(t, list.Data, 1)

		resp = env.do(t, http.MethodPut, "/api/roles/"+list.Data[0].ID, token, map[string]interface{}{
			"name": "Root",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRefundFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t, "finance@example.com", "Finance")
	ctx := context.Background()

	user := &models.User{
		ID: primitive.NewObjectID(), Username: "frank", Email: "frank@example.com",
		Role: "user", Status: "active", Wallet: 10,
	}
	listener := &models.User{
		ID: primitive.NewObjectID(), Username: "grace", Email: "grace@example.com",
		Role: "listener", Status: "active",
	}
	require.NoError(t, env.repos.Users.Create(ctx, user))
	require.NoError(t, env.repos.Users.Create(ctx, listener))

	session := &models.Session{
		ID: primitive.NewObjectID(), SessionID: "S-200",
		User: user.ID, Listener: listener.ID,
		Type: "call", StartTime: time.Now(), Status: "completed", PaymentStatus: "paid",
		Amount: 150,
	}
	require.NoError(t, env.repos.Sessions.Create(ctx, session))

	resp := env.do(t, http.MethodPost, "/api/wallet/refund", token, map[string]interface{}{
		"sessionId": "S-200",
		"note":      "listener no-show",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("wallet credited with the session amount", func(t *testing.T) {
		got, err := env.repos.Users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 160.0, got.Wallet)
	})

	t.Run("session marked refunded", func(t *testing.T) {
		got, err := env.repos.Sessions.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusRefunded, got.PaymentStatus)
	})

	t.Run("second refund is rejected", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/wallet/refund", token, map[string]interface{}{
			"sessionId": "S-200",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSendNotificationChannelGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// a custom role allowed to create notifications but without the
	// per-channel send flags
	matrix := models.DefaultPermissions()
	matrix.SetAll(models.ModuleNotifications, true)
	perms := matrix[models.ModuleNotifications]
	perms.SendEmail = false
	matrix[models.ModuleNotifications] = perms

	_, err := env.roles.Create(ctx, &models.CreateRoleRequest{
		Name:        "Push Only",
		Permissions: matrix,
	}, "system")
	require.NoError(t, err)
	token := env.seedAdmin(t, "pusher@example.com", "Push Only")

	t.Run("allowed channel goes through", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/notifications", token, map[string]interface{}{
			"title": "Maintenance", "body": "Sunday 2am", "channel": "push", "audience": "all",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("missing channel flag is forbidden", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/notifications", token, map[string]interface{}{
			"title": "Maintenance", "body": "Sunday 2am", "channel": "email", "audience": "all",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestSessionListCache(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t, "root@example.com", "SuperAdmin")
	ctx := context.Background()

	user := &models.User{
		ID: primitive.NewObjectID(), Username: "erin", Email: "erin@example.com",
		Role: "user", Status: "active",
	}
	listener := &models.User{
		ID: primitive.NewObjectID(), Username: "frank", Email: "frank@example.com",
		Role: "listener", Status: "active",
	}
	require.NoError(t, env.repos.Users.Create(ctx, user))
	require.NoError(t, env.repos.Users.Create(ctx, listener))

	session := &models.Session{
		ID: primitive.NewObjectID(), SessionID: "S-300",
		User: user.ID, Listener: listener.ID,
		Type: "chat", StartTime: time.Now(), Status: "scheduled", PaymentStatus: "pending",
		Amount: 50,
	}
	require.NoError(t, env.repos.Sessions.Create(ctx, session))

	listSessions := func(t *testing.T, path string) []models.SessionResponse {
		t.Helper()
		resp := env.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data []models.SessionResponse `json:"data"`
		}
		decodeBody(t, resp, &body)
		return body.Data
	}

	const defaultPageKey = "sessions:page:1:limit:10"

	t.Run("default page is written to cache", func(t *testing.T) {
		got := listSessions(t, "/api/sessions")
		require.Len(t, got, 1)
		assert.Equal(t, "scheduled", got[0].Status)
		assert.True(t, env.redis.Exists(defaultPageKey))
	})

	t.Run("filtered listing bypasses the cache", func(t *testing.T) {
		env.redis.FlushAll()
		got := listSessions(t, "/api/sessions?status=scheduled")
		require.Len(t, got, 1)
		assert.False(t, env.redis.Exists(defaultPageKey))
	})

	t.Run("update purges cached pages and the next read is fresh", func(t *testing.T) {
		listSessions(t, "/api/sessions")
		require.True(t, env.redis.Exists(defaultPageKey))

		resp := env.do(t, http.MethodPut, "/api/sessions/"+session.ID.Hex(), token, map[string]interface{}{
			"status": "completed",
		})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, env.redis.Exists(defaultPageKey))

		got := listSessions(t, "/api/sessions")
		require.Len(t, got, 1)
		assert.Equal(t, "completed", got[0].Status)
	})
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data handlers.HealthSnapshot `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body.Data.Status)

	resp = env.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
