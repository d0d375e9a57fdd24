package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/utils"
)

type mongoRoleRepository struct {
	coll *mongo.Collection
}

func (r *mongoRoleRepository) Create(ctx context.Context, role *models.Role) error {
	_, err := r.coll.InsertOne(ctx, role)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("role name already exists")
	}
	if err != nil {
		return errors.Wrap(err, "insert role")
	}
	return nil
}

func (r *mongoRoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("role not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find role")
	}
	return &role, nil
}

func (r *mongoRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("role not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find role by name")
	}
	return &role, nil
}

func (r *mongoRoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	// createdAt keeps the stable insertion order the listing relies on
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list roles")
	}
	defer cursor.Close(ctx)

	var roles []*models.Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, errors.Wrap(err, "decode roles")
	}
	return roles, nil
}

func (r *mongoRoleRepository) Update(ctx context.Context, role *models.Role) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": role.ID}, role)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("role name already exists")
	}
	if err != nil {
		return errors.Wrap(err, "update role")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("role not found")
	}
	return nil
}

func (r *mongoRoleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete role")
	}
	if result.DeletedCount == 0 {
		return utils.NotFoundError("role not found")
	}
	return nil
}
