package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	rolesCollection         = "roles"
	adminsCollection        = "admins"
	usersCollection         = "users"
	sessionsCollection      = "sessions"
	listenersCollection     = "listeners"
	ticketsCollection       = "tickets"
	transactionsCollection  = "transactions"
	notificationsCollection = "notifications"
)

// NewMongoRepositories wires every repository to its MongoDB collection
func NewMongoRepositories(client *mongo.Client, database string) *Repositories {
	db := client.Database(database)
	return &Repositories{
		Roles:         &mongoRoleRepository{coll: db.Collection(rolesCollection)},
		Admins:        &mongoAdminRepository{coll: db.Collection(adminsCollection)},
		Users:         &mongoUserRepository{coll: db.Collection(usersCollection)},
		Sessions:      &mongoSessionRepository{coll: db.Collection(sessionsCollection)},
		Listeners:     &mongoListenerRepository{coll: db.Collection(listenersCollection)},
		Tickets:       &mongoTicketRepository{coll: db.Collection(ticketsCollection)},
		Transactions:  &mongoTransactionRepository{coll: db.Collection(transactionsCollection)},
		Notifications: &mongoNotificationRepository{coll: db.Collection(notificationsCollection)},
	}
}

// pageOptions builds skip/limit find options with sane defaults
func pageOptions(page, limit int) (*options.FindOptions, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(skip))
	return opts, page, limit
}
