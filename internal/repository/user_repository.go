package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iliyamo/mangify/internal/model"
)

// UserRepo provides access to the `users` collection.
type UserRepo struct{ Users *mongo.Collection }

func NewUserRepo(c *mongo.Collection) *UserRepo { return &UserRepo{Users: c} }

// Create inserts a user document. Duplicate usernames surface as
// ErrConflict through the unique idx_username index.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	_, err := r.Users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

// GetByID fetches a user by its id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches a user by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.Users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns every user document.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.Users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies a $set patch to the user with the given id. A patch that
// renames the user onto an existing username surfaces as ErrConflict.
func (r *UserRepo) Update(ctx context.Context, id string, patch bson.M) error {
	res, err := r.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user with the given id.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
