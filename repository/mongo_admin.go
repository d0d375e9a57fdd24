package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/utils"
)

type mongoAdminRepository struct {
	coll *mongo.Collection
}

func (r *mongoAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	_, err := r.coll.InsertOne(ctx, admin)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("admin with this email already exists")
	}
	if err != nil {
		return errors.Wrap(err, "insert admin")
	}
	return nil
}

func (r *mongoAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("admin not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find admin")
	}
	return &admin, nil
}

func (r *mongoAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError("admin not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find admin by email")
	}
	return &admin, nil
}

func (r *mongoAdminRepository) List(ctx context.Context, page, limit int) ([]*models.Admin, int64, error) {
	opts, _, _ := pageOptions(page, limit)

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Wrap(err, "count admins")
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list admins")
	}
	defer cursor.Close(ctx)

	var admins []*models.Admin
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, 0, errors.Wrap(err, "decode admins")
	}
	return admins, total, nil
}

func (r *mongoAdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": admin.ID}, admin)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ConflictError("admin with this email already exists")
	}
	if err != nil {
		return errors.Wrap(err, "update admin")
	}
	if result.MatchedCount == 0 {
		return utils.NotFoundError("admin not found")
	}
	return nil
}

func (r *mongoAdminRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete admin")
	}
	if result.DeletedCount == 0 {
		return utils.NotFoundError("admin not found")
	}
	return nil
}
