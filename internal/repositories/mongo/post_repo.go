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

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	Save(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type postRepo struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepository {
	return &postRepo{col: db.Collection("posts")}
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) error {
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
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

func (r *postRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *postRepo) ListAll(ctx context.Context) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Post
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save rewrites the whole document; likes and comments are mutated this
// way, so concurrent writers are last-writer-wins.
func (r *postRepo) Save(ctx context.Context, p *models.Post) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
