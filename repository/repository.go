package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CoderAnshul/AdDash/models"
)

// RoleRepository stores system and custom roles. List preserves
// insertion order.
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id string) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
}

// AdminRepository stores back office staff accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	List(ctx context.Context, page, limit int) ([]*models.Admin, int64, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores marketplace end users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	List(ctx context.Context, page, limit int) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AttachSession(ctx context.Context, userID, sessionID primitive.ObjectID) error
	DetachSessions(ctx context.Context, userIDs, sessionIDs []primitive.ObjectID) error
	AdjustWallet(ctx context.Context, userID primitive.ObjectID, delta float64) error
}

// SessionRepository stores counseling session records
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error)
	List(ctx context.Context, filter models.SessionFilter) ([]*models.Session, int64, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Session, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
}

// ListenerRepository stores listener profiles
type ListenerRepository interface {
	Create(ctx context.Context, listener *models.Listener) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Listener, error)
	List(ctx context.Context, filter models.ListenerFilter) ([]*models.Listener, int64, error)
}

// TicketRepository stores support tickets
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	List(ctx context.Context, filter models.TicketFilter) ([]*models.Ticket, int64, error)
	Update(ctx context.Context, ticket *models.Ticket) error
}

// TransactionRepository stores wallet movements
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, int64, error)
	Update(ctx context.Context, tx *models.Transaction) error
}

// NotificationRepository stores sent notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, filter models.NotificationFilter) ([]*models.Notification, int64, error)
}

// Repositories bundles every store the handlers depend on
type Repositories struct {
	Roles         RoleRepository
	Admins        AdminRepository
	Users         UserRepository
	Sessions      SessionRepository
	Listeners     ListenerRepository
	Tickets       TicketRepository
	Transactions  TransactionRepository
	Notifications NotificationRepository
}
