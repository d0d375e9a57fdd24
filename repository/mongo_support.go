package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/utils"
)

type mongoListenerRepository struct {
	coll *mongo.Collection
}

func (r *mongoListenerRepository) Create(ctx context.Context, listener *models.Listener) error {
	_, err := r.coll.InsertOne(ctx, listener)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("user is already a listener")
	}
	return errors.Wrap(err, "insert listener")
}

func (r *mongoListenerRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Listener, error) {
	var listener models.Listener
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&listener)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("listener not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find listener")
	}
	return &listener, nil
}

func (r *mongoListenerRepository) List(ctx context.Context, filter models.ListenerFilter) ([]*models.Listener, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts, _, _ := pageOptions(filter.Page, filter.Limit)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count listeners")
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list listeners")
	}
	defer cursor.Close(ctx)

	var listeners []*models.Listener
	if err := cursor.All(ctx, &listeners); err != nil {
		return nil, 0, errors.Wrap(err, "decode listeners")
	}
	return listeners, total, nil
}

type mongoTicketRepository struct {
	coll *mongo.Collection
}

func (r *mongoTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	_, err := r.coll.InsertOne(ctx, ticket)
	return errors.Wrap(err, "insert ticket")
}

func (r *mongoTicketRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("ticket not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find ticket")
	}
	return &ticket, nil
}

func (r *mongoTicketRepository) List(ctx context.Context, filter models.TicketFilter) ([]*models.Ticket, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	opts, _, _ := pageOptions(filter.Page, filter.Limit)
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count tickets")
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list tickets")
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, 0, errors.Wrap(err, "decode tickets")
	}
	return tickets, total, nil
}

func (r *mongoTicketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ticket.ID}, ticket)
	if err != nil {
		return errors.Wrap(err, "update ticket")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("ticket not found")
	}
	return nil
}

type mongoTransactionRepository struct {
	coll *mongo.Collection
}

func (r *mongoTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	_, err := r.coll.InsertOne(ctx, tx)
	return errors.Wrap(err, "insert transaction")
}

func (r *mongoTransactionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("transaction not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find transaction")
	}
	return &tx, nil
}

func (r *mongoTransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, int64, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts, _, _ := pageOptions(filter.Page, filter.Limit)
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count transactions")
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list transactions")
	}
	defer cursor.Close(ctx)

	var txs []*models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, 0, errors.Wrap(err, "decode transactions")
	}
	return txs, total, nil
}

func (r *mongoTransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tx.ID}, tx)
	if err != nil {
		return errors.Wrap(err, "update transaction")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("transaction not found")
	}
	return nil
}

type mongoNotificationRepository struct {
	coll *mongo.Collection
}

func (r *mongoNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	_, err := r.coll.InsertOne(ctx, notification)
	return errors.Wrap(err, "insert notification")
}

func (r *mongoNotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]*models.Notification, int64, error) {
	query := bson.M{}
	if filter.Channel != "" {
		query["channel"] = filter.Channel
	}

	opts, _, _ := pageOptions(filter.Page, filter.Limit)
	opts.SetSort(bson.D{{Key: "sentAt", Value: -1}})

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count notifications")
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list notifications")
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, errors.Wrap(err, "decode notifications")
	}
	return notifications, total, nil
}

// ensure interface compliance
var (
	_ ListenerRepository     = (*mongoListenerRepository)(nil)
	_ TicketRepository       = (*mongoTicketRepository)(nil)
	_ TransactionRepository  = (*mongoTransactionRepository)(nil)
	_ NotificationRepository = (*mongoNotificationRepository)(nil)
	_ RoleRepository         = (*mongoRoleRepository)(nil)
	_ AdminRepository        = (*mongoAdminRepository)(nil)
	_ UserRepository         = (*mongoUserRepository)(nil)
	_ SessionRepository      = (*mongoSessionRepository)(nil)
)
