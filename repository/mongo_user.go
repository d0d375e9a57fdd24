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

type mongoUserRepository struct {
	coll *mongo.Collection
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("email or username already exists")
	}
	if err != nil {
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

func (r *mongoUserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	filter := bson.M{"$or": []bson.M{{"email": email}, {"username": username}}}
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("user not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by email or username")
	}
	return &user, nil
}

func (r *mongoUserRepository) List(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	opts, _, _ := pageOptions(page, limit)

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, errors.Wrap(err, "decode users")
	}
	return users, total, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *models.User) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("email or username already exists")
	}
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("user not found")
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if result.DeletedCount == 0 {
		return utils.NotFoundError("user not found")
	}
	return nil
}

func (r *mongoUserRepository) AttachSession(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"sessions": sessionID}},
	)
	return errors.Wrap(err, "attach session")
}

func (r *mongoUserRepository) DetachSessions(ctx context.Context, userIDs, sessionIDs []primitive.ObjectID) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIDs}},
		bson.M{"$pull": bson.M{"sessions": bson.M{"$in": sessionIDs}}},
	)
	return errors.Wrap(err, "detach sessions")
}

func (r *mongoUserRepository) AdjustWallet(ctx context.Context, userID primitive.ObjectID, delta float64) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"wallet": delta}},
	)
	if err != nil {
		return errors.Wrap(err, "adjust wallet")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("user not found")
	}
	return nil
}
