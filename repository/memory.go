package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/utils"
)

// NewMemoryRepositories builds a full set of in-memory stores, used by
// tests and local development without a database.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Roles:         NewMemoryRoleRepository(),
		Admins:        NewMemoryAdminRepository(),
		Users:         NewMemoryUserRepository(),
		Sessions:      NewMemorySessionRepository(),
		Listeners:     NewMemoryListenerRepository(),
		Tickets:       NewMemoryTicketRepository(),
		Transactions:  NewMemoryTransactionRepository(),
		Notifications: NewMemoryNotificationRepository(),
	}
}

// MemoryRoleRepository keeps roles in insertion order
type MemoryRoleRepository struct {
	mu    sync.RWMutex
	order []string
	roles map[string]*models.Role
}

func NewMemoryRoleRepository() *MemoryRoleRepository {
	return &MemoryRoleRepository{roles: make(map[string]*models.Role)}
}

func cloneRole(role *models.Role) *models.Role {
	clone := *role
	clone.Permissions = role.Permissions.Clone()
	return &clone
}

func (r *MemoryRoleRepository) Create(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if strings.EqualFold(existing.Name, role.Name) {
			return utils.ConflictError("role name already exists")
		}
	}
	r.roles[role.ID] = cloneRole(role)
	r.order = append(r.order, role.ID)
	return nil
}

func (r *MemoryRoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[id]
	if !ok {
		return nil, utils.NotFoundError("role not found")
	}
	return cloneRole(role), nil
}

func (r *MemoryRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			return cloneRole(role), nil
		}
	}
	return nil, utils.NotFoundError("role not found")
}

func (r *MemoryRoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roles := make([]*models.Role, 0, len(r.order))
	for _, id := range r.order {
		roles = append(roles, cloneRole(r.roles[id]))
	}
	return roles, nil
}

func (r *MemoryRoleRepository) Update(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.ID]; !ok {
		return utils.NotFoundError("role not found")
	}
	for id, existing := range r.roles {
		if id != role.ID && strings.EqualFold(existing.Name, role.Name) {
			return utils.ConflictError("role name already exists")
		}
	}
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *MemoryRoleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return utils.NotFoundError("role not found")
	}
	delete(r.roles, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryAdminRepository keeps admin accounts keyed by id
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	order  []string
	admins map[string]*models.Admin
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: make(map[string]*models.Admin)}
}

func (r *MemoryAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, admin.Email) {
			return utils.ConflictError("admin with this email already exists")
		}
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	r.order = append(r.order, admin.ID)
	return nil
}

func (r *MemoryAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, utils.NotFoundError("admin not found")
	}
	clone := *admin
	return &clone, nil
}

func (r *MemoryAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, admin := range r.admins {
		if strings.EqualFold(admin.Email, email) {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, utils.NotFoundError("admin not found")
}

func (r *MemoryAdminRepository) List(ctx context.Context, page, limit int) ([]*models.Admin, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := int64(len(r.order))
	start, end := pageBounds(len(r.order), page, limit)
	admins := make([]*models.Admin, 0, end-start)
	for _, id := range r.order[start:end] {
		clone := *r.admins[id]
		admins = append(admins, &clone)
	}
	return admins, total, nil
}

func (r *MemoryAdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[admin.ID]; !ok {
		return utils.NotFoundError("admin not found")
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *MemoryAdminRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return utils.NotFoundError("admin not found")
	}
	delete(r.admins, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryUserRepository keeps marketplace users keyed by ObjectID
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func cloneUser(user *models.User) *models.User {
	clone := *user
	clone.Sessions = append([]primitive.ObjectID(nil), user.Sessions...)
	return &clone
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) || existing.Username == user.Username {
			return utils.ConflictError("email or username already exists")
		}
	}
	r.users[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, utils.NotFoundError("user not found")
	}
	return cloneUser(user), nil
}

func (r *MemoryUserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) || user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, utils.NotFoundError("user not found")
}

func (r *MemoryUserRepository) List(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := int64(len(r.order))
	start, end := pageBounds(len(r.order), page, limit)
	users := make([]*models.User, 0, end-start)
	for _, id := range r.order[start:end] {
		users = append(users, cloneUser(r.users[id]))
	}
	return users, total, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return utils.NotFoundError("user not found")
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return utils.NotFoundError("user not found")
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryUserRepository) AttachSession(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	user.Sessions = append(user.Sessions, sessionID)
	return nil
}

func (r *MemoryUserRepository) DetachSessions(ctx context.Context, userIDs, sessionIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remove := make(map[primitive.ObjectID]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		remove[id] = true
	}
	for _, userID := range userIDs {
		user, ok := r.users[userID]
		if !ok {
			continue
		}
		kept := user.Sessions[:0]
		for _, sid := range user.Sessions {
			if !remove[sid] {
				kept = append(kept, sid)
			}
		}
		user.Sessions = kept
	}
	return nil
}

func (r *MemoryUserRepository) AdjustWallet(ctx context.Context, userID primitive.ObjectID, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return utils.NotFoundError("user not found")
	}
	user.Wallet += delta
	return nil
}

// MemorySessionRepository keeps counseling sessions in memory
type MemorySessionRepository struct {
	mu       sync.RWMutex
	order    []primitive.ObjectID
	sessions map[primitive.ObjectID]*models.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[primitive.ObjectID]*models.Session)}
}

func (r *MemorySessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sessions {
		if existing.SessionID == session.SessionID {
			return utils.ConflictError("a session with this sessionId already exists")
		}
	}
	clone := *session
	r.sessions[session.ID] = &clone
	r.order = append(r.order, session.ID)
	return nil
}

func (r *MemorySessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, utils.NotFoundError("session not found")
	}
	clone := *session
	return &clone, nil
}

func (r *MemorySessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, session := range r.sessions {
		if session.SessionID == sessionID {
			clone := *session
			return &clone, nil
		}
	}
	return nil, utils.NotFoundError("session not found")
}

func (r *MemorySessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]*models.Session, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.Session, 0, len(r.order))
	for _, id := range r.order {
		session := r.sessions[id]
		if filter.Status != "" && session.Status != filter.Status {
			continue
		}
		if filter.Type != "" && session.Type != filter.Type {
			continue
		}
		if filter.PaymentStatus != "" && session.PaymentStatus != filter.PaymentStatus {
			continue
		}
		clone := *session
		matched = append(matched, &clone)
	}

	order := filter.Order
	if order == 0 {
		order = -1
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if order > 0 {
			return matched[i].StartTime.Before(matched[j].StartTime)
		}
		return matched[j].StartTime.Before(matched[i].StartTime)
	})

	total := int64(len(matched))
	start, end := pageBounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], total, nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return utils.NotFoundError("session not found")
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return utils.NotFoundError("session not found")
	}
	delete(r.sessions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemorySessionRepository) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sessions []*models.Session
	for _, id := range r.order {
		session := r.sessions[id]
		if session.User == userID || session.Listener == userID {
			clone := *session
			sessions = append(sessions, &clone)
		}
	}
	return sessions, nil
}

func (r *MemorySessionRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remove := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if remove[id] {
			delete(r.sessions, id)
		} else {
			kept = append(kept, id)
		}
	}
	r.order = kept
	return nil
}

// MemoryListenerRepository keeps listener profiles in memory
type MemoryListenerRepository struct {
	mu        sync.RWMutex
	order     []primitive.ObjectID
	listeners map[primitive.ObjectID]*models.Listener
}

func NewMemoryListenerRepository() *MemoryListenerRepository {
	return &MemoryListenerRepository{listeners: make(map[primitive.ObjectID]*models.Listener)}
}

func (r *MemoryListenerRepository) Create(ctx context.Context, listener *models.Listener) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.listeners {
		if existing.UserID == listener.UserID {
			return utils.ConflictError("user is already a listener")
		}
	}
	clone := *listener
	r.listeners[listener.ID] = &clone
	r.order = append(r.order, listener.ID)
	return nil
}

func (r *MemoryListenerRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Listener, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, listener := range r.listeners {
		if listener.UserID == userID {
			clone := *listener
			return &clone, nil
		}
	}
	return nil, utils.NotFoundError("listener not found")
}

func (r *MemoryListenerRepository) List(ctx context.Context, filter models.ListenerFilter) ([]*models.Listener, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*models.Listener, 0, len(r.order))
	for _, id := range r.order {
		listener := r.listeners[id]
		if filter.Status != "" && listener.Status != filter.Status {
			continue
		}
		clone := *listener
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	start, end := pageBounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], total, nil
}

// MemoryTicketRepository keeps support tickets in memory
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	order   []primitive.ObjectID
	tickets map[primitive.ObjectID]*models.Ticket
}

func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[primitive.ObjectID]*models.Ticket)}
}

func (r *MemoryTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	r.order = append(r.order, ticket.ID)
	return nil
}

func (r *MemoryTicketRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, utils.NotFoundError("ticket not found")
	}
	clone := *ticket
	return &clone, nil
}

func (r *MemoryTicketRepository) List(ctx context.Context, filter models.TicketFilter) ([]*models.Ticket, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*models.Ticket, 0, len(r.order))
	for _, id := range r.order {
		ticket := r.tickets[id]
		if filter.Status != "" && ticket.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && ticket.Priority != filter.Priority {
			continue
		}
		clone := *ticket
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	start, end := pageBounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], total, nil
}

func (r *MemoryTicketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return utils.NotFoundError("ticket not found")
	}
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

// MemoryTransactionRepository keeps wallet movements in memory
type MemoryTransactionRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	txs   map[primitive.ObjectID]*models.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{txs: make(map[primitive.ObjectID]*models.Transaction)}
}

func (r *MemoryTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *tx
	r.txs[tx.ID] = &clone
	r.order = append(r.order, tx.ID)
	return nil
}

func (r *MemoryTransactionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, utils.NotFoundError("transaction not found")
	}
	clone := *tx
	return &clone, nil
}

func (r *MemoryTransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*models.Transaction, 0, len(r.order))
	for _, id := range r.order {
		tx := r.txs[id]
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		clone := *tx
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	start, end := pageBounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], total, nil
}

func (r *MemoryTransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txs[tx.ID]; !ok {
		return utils.NotFoundError("transaction not found")
	}
	clone := *tx
	r.txs[tx.ID] = &clone
	return nil
}

// MemoryNotificationRepository keeps sent notifications in memory
type MemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*models.Notification
}

func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{}
}

func (r *MemoryNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *notification
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *MemoryNotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]*models.Notification, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*models.Notification, 0, len(r.notifications))
	for _, notification := range r.notifications {
		if filter.Channel != "" && notification.Channel != filter.Channel {
			continue
		}
		clone := *notification
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	start, end := pageBounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], total, nil
}

// pageBounds clamps page/limit to valid slice bounds
func pageBounds(length, page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > length {
		start = length
	}
	end := start + limit
	if end > length {
		end = length
	}
	return start, end
}

// ensure interface compliance
var (
	_ RoleRepository         = (*MemoryRoleRepository)(nil)
	_ AdminRepository        = (*MemoryAdminRepository)(nil)
	_ UserRepository         = (*MemoryUserRepository)(nil)
	_ SessionRepository      = (*MemorySessionRepository)(nil)
	_ ListenerRepository     = (*MemoryListenerRepository)(nil)
	_ TicketRepository       = (*MemoryTicketRepository)(nil)
	_ TransactionRepository  = (*MemoryTransactionRepository)(nil)
	_ NotificationRepository = (*MemoryNotificationRepository)(nil)
)
