package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/config"
	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/repository"
	"github.com/CoderAnshul/AdDash/utils"
)

// Session is one authenticated admin session with a live countdown.
// Remaining is in seconds; when it reaches zero the session expires
// and is torn down exactly once.
type Session struct {
	Token      string    `json:"token"`
	AdminID    string    `json:"adminId"`
	AdminName  string    `json:"adminName"`
	AdminEmail string    `json:"adminEmail"`
	Role       string    `json:"role"`
	Remaining  int       `json:"remaining"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Manager owns all live admin sessions and the single countdown
// ticker that ages them. Sessions survive restarts through Redis
// blobs keyed by expiry.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	admins  repository.AdminRepository
	store   *cache.Cache
	logger  *zap.Logger
	timeout time.Duration
	secret  string
	ttl     time.Duration

	cancel context.CancelFunc
	done   chan struct{}

	// OnExpire, when set, is invoked once per expired session
	OnExpire func(Session)
}

// NewManager builds a session manager. Call Start to begin the
// countdown loop and Close to tear it down.
func NewManager(admins repository.AdminRepository, store *cache.Cache, cfg *config.AuthConfig, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		admins:   admins,
		store:    store,
		logger:   logger,
		timeout:  cfg.SessionTimeout,
		secret:   cfg.JWTSecret,
		ttl:      cfg.TokenTTL,
	}
}

// Start launches the one-second countdown loop. It runs until Close.
func (m *Manager) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.tick()
			}
		}
	}()
}

// Close stops the countdown loop and waits for it to exit
func (m *Manager) Close() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Login authenticates an admin by email and password and establishes
// a session with the full countdown.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	if strings.TrimSpace(password) == "" {
		return nil, utils.AuthenticationError("password is required")
	}

	admin, err := m.admins.GetByEmail(ctx, email)
	if err != nil {
		// Same message for unknown email and bad password
		return nil, utils.AuthenticationError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, utils.AuthenticationError("invalid email or password")
	}

	token, err := utils.GenerateJWT(m.secret, admin.ID, admin.RoleName, m.ttl)
	if err != nil {
		return nil, utils.InternalError("failed to issue token", err)
	}

	session := &Session{
		Token:      uuid.New().String(),
		AdminID:    admin.ID,
		AdminName:  admin.Name,
		AdminEmail: admin.Email,
		Role:       admin.RoleName,
		Remaining:  int(m.timeout.Seconds()),
		ExpiresAt:  time.Now().Add(m.timeout),
	}

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	m.persist(ctx, session)

	admin.LastLogin = time.Now().UTC()
	if err := m.admins.Update(ctx, admin); err != nil {
		m.logger.Warn("failed to record last login", zap.Error(err))
	}

	m.logger.Info("admin logged in",
		zap.String("email", admin.Email),
		zap.String("role", admin.RoleName))

	return &models.LoginResponse{
		Token:        token,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
		Admin:        admin.Response(),
	}, nil
}

// Logout tears down a session. Unknown tokens are a no-op, matching
// the silent discard on expired reloads.
func (m *Manager) Logout(ctx context.Context, token string) {
	m.mu.Lock()
	session, ok := m.sessions[token]
	if ok {
		delete(m.sessions, token)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	m.discard(ctx, token)
	m.logger.Info("admin logged out", zap.String("email", session.AdminEmail))
}

// Reset restores a session's countdown to the full duration. Called
// on any authenticated activity.
func (m *Manager) Reset(ctx context.Context, token string) bool {
	m.mu.Lock()
	session, ok := m.sessions[token]
	if ok {
		session.Remaining = int(m.timeout.Seconds())
		session.ExpiresAt = time.Now().Add(m.timeout)
	}
	m.mu.Unlock()

	if ok {
		m.persist(ctx, session)
	}
	return ok
}

// Get returns a snapshot of a live session
func (m *Manager) Get(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// Active returns the number of live sessions
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Restore reloads persisted sessions after a restart. Blobs whose
// expiry has passed are discarded silently.
func (m *Manager) Restore(ctx context.Context) error {
	keys, err := m.store.Keys(ctx, strings.ReplaceAll(cache.AuthSessionPattern, "%s", "*"))
	if err != nil {
		return err
	}

	now := time.Now()
	restored := 0
	for _, key := range keys {
		var session Session
		if err := m.store.Get(ctx, key, &session); err != nil {
			continue
		}
		if !session.ExpiresAt.After(now) {
			m.discard(ctx, session.Token)
			continue
		}
		session.Remaining = int(time.Until(session.ExpiresAt).Seconds())
		m.mu.Lock()
		m.sessions[session.Token] = &session
		m.mu.Unlock()
		restored++
	}

	if restored > 0 {
		m.logger.Info("restored sessions", zap.Int("count", restored))
	}
	return nil
}

// tick ages every live session by one second and expires the ones
// that reach zero. Separated from the ticker loop so tests can drive
// the countdown deterministically.
func (m *Manager) tick() {
	var expired []*Session

	m.mu.Lock()
	for token, session := range m.sessions {
		session.Remaining--
		if session.Remaining <= 0 {
			delete(m.sessions, token)
			expired = append(expired, session)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		m.discard(context.Background(), session.Token)
		m.logger.Info("session expired", zap.String("email", session.AdminEmail))
		if m.OnExpire != nil {
			m.OnExpire(*session)
		}
	}
}

func (m *Manager) persist(ctx context.Context, session *Session) {
	key := fmt.Sprintf(cache.AuthSessionPattern, session.Token)
	if err := m.store.Set(ctx, key, session, time.Until(session.ExpiresAt)); err != nil {
		m.logger.Warn("failed to persist session", zap.Error(err))
	}
}

func (m *Manager) discard(ctx context.Context, token string) {
	key := fmt.Sprintf(cache.AuthSessionPattern, token)
	if err := m.store.Delete(ctx, key); err != nil {
		m.logger.Warn("failed to discard session blob", zap.Error(err))
	}
}
