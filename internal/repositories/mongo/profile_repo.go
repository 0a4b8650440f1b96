package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/llvasconcellos/devconnector/internal/models"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	ListAll(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, user primitive.ObjectID, fields bson.M) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
	DeleteByUser(ctx context.Context, user primitive.ObjectID) error
}

type profileRepo struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepository {
	return &profileRepo{col: db.Collection("profiles")}
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *profileRepo) GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"user": user}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"handle": handle}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) ListAll(ctx context.Context) ([]models.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a $set of the given fields to the profile owned by
// user and returns the updated document.
func (r *profileRepo) Update(ctx context.Context, user primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user": user},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

// Save rewrites the whole document. Concurrent saves of the same
// profile are last-writer-wins.
func (r *profileRepo) Save(ctx context.Context, p *models.Profile) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

func (r *profileRepo) DeleteByUser(ctx context.Context, user primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user": user})
	return err
}
