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

type mongoSessionRepository struct {
	coll *mongo.Collection
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *models.Session) error {
	_, err := r.coll.InsertOne(ctx, session)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("a session with this sessionId already exists")
	}
	if err != nil {
		return errors.Wrap(err, "insert session")
	}
	return nil
}

func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("session not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find session")
	}
	return &session, nil
}

func (r *mongoSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("session not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find session by sessionId")
	}
	return &session, nil
}

func (r *mongoSessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]*models.Session, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.PaymentStatus != "" {
		query["paymentStatus"] = filter.PaymentStatus
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "startTime"
	}
	order := filter.Order
	if order == 0 {
		order = -1
	}

	opts, _, _ := pageOptions(filter.Page, filter.Limit)
	opts.SetSort(bson.D{{Key: sortBy, Value: order}})

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count sessions")
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list sessions")
	}
	defer cursor.Close(ctx)

	var sessions []*models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, errors.Wrap(err, "decode sessions")
	}
	return sessions, total, nil
}

func (r *mongoSessionRepository) Update(ctx context.Context, session *models.Session) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	if err != nil {
		return errors.Wrap(err, "update session")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("session not found")
	}
	return nil
}

func (r *mongoSessionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete session")
	}
	if result.DeletedCount == 0 {
		return utils.NotFoundError("session not found")
	}
	return nil
}

func (r *mongoSessionRepository) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Session, error) {
	filter := bson.M{"$or": []bson.M{{"user": userID}, {"listener": userID}}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find sessions by participant")
	}
	defer cursor.Close(ctx)

	var sessions []*models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, errors.Wrap(err, "decode sessions")
	}
	return sessions, nil
}

func (r *mongoSessionRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return errors.Wrap(err, "delete sessions")
}
