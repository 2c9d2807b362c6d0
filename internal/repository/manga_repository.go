package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iliyamo/mangify/internal/model"
)

// MangaRepo provides access to the `mangas` collection.
type MangaRepo struct{ Mangas *mongo.Collection }

func NewMangaRepo(c *mongo.Collection) *MangaRepo { return &MangaRepo{Mangas: c} }

// Create inserts a catalog entry. Duplicate titles surface as ErrConflict
// through the unique idx_title index.
func (r *MangaRepo) Create(ctx context.Context, m model.Manga) error {
	_, err := r.Mangas.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

// GetByID fetches a catalog entry by its id.
func (r *MangaRepo) GetByID(ctx context.Context, id string) (model.Manga, error) {
	var m model.Manga
	err := r.Mangas.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Manga{}, ErrNotFound
	}
	return m, err
}

// List returns every catalog entry.
func (r *MangaRepo) List(ctx context.Context) ([]model.Manga, error) {
	cur, err := r.Mangas.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	mangas := []model.Manga{}
	if err := cur.All(ctx, &mangas); err != nil {
		return nil, err
	}
	return mangas, nil
}

// Update applies a $set patch to the entry with the given id. A patch that
// renames the entry onto an existing title surfaces as ErrConflict.
func (r *MangaRepo) Update(ctx context.Context, id string, patch bson.M) error {
	res, err := r.Mangas.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
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

// Delete removes the entry with the given id.
func (r *MangaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.Mangas.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
