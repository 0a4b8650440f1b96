package services

import (
	"context"
	"errors"
	"time"

	"github.com/llvasconcellos/devconnector/internal/auth"
	"github.com/llvasconcellos/devconnector/internal/cache"
	"github.com/llvasconcellos/devconnector/internal/models"
	mongorepo "github.com/llvasconcellos/devconnector/internal/repositories/mongo"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const postListTTL = 15 * time.Second

type PostService interface {
	ListAll(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Create(ctx context.Context, who auth.Identity, in validation.PostInput) (*models.Post, error)
	Delete(ctx context.Context, who auth.Identity, id primitive.ObjectID) error
	ToggleLike(ctx context.Context, who auth.Identity, id primitive.ObjectID) (*models.Post, error)
	AddComment(ctx context.Context, who auth.Identity, id primitive.ObjectID, in validation.PostInput) (*models.Post, error)
	RemoveComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Post, error)
}

type postService struct {
	posts mongorepo.PostRepository
	cache cache.Cache
}

func NewPostService(posts mongorepo.PostRepository, c cache.Cache) PostService {
	return &postService{posts: posts, cache: c}
}

func (s *postService) ListAll(ctx context.Context) ([]models.Post, error) {
	const op = "PostService.ListAll"

	if s.cache != nil {
		var cached []models.Post
		if hit, err := s.cache.GetJSON(ctx, cache.KeyAllPosts, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list posts", err)
	}
	if out == nil {
		out = []models.Post{}
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.KeyAllPosts, out, postListTTL)
	}
	return out, nil
}

func (s *postService) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	const op = "PostService.Get"

	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Post not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get post", err)
	}
	return p, nil
}

// Create inserts a post. Name and avatar are denormalized at write
// time: taken from the request body, falling back to the token identity
// when the body leaves them blank.
func (s *postService) Create(ctx context.Context, who auth.Identity, in validation.PostInput) (*models.Post, error) {
	const op = "PostService.Create"

	if v := validation.ValidatePostInput(in); !v.IsValid {
		return nil, utils.EV(op, v.Errors)
	}

	name := in.Name
	if name == "" {
		name = who.Name
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = who.Avatar
	}

	p := &models.Post{
		User:     who.ID,
		Text:     in.Text,
		Name:     name,
		Avatar:   avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create post", err)
	}
	s.invalidate(ctx)
	return p, nil
}

// Delete removes a post after re-checking ownership against the stored
// author reference.
func (s *postService) Delete(ctx context.Context, who auth.Identity, id primitive.ObjectID) error {
	const op = "PostService.Delete"

	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.User != who.ID {
		return utils.E(utils.CodeUnauthorized, op, "User not authorized", nil)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete post", err)
	}
	s.invalidate(ctx)
	return nil
}

// ToggleLike removes the caller's like when present, otherwise prepends
// one. Applying it twice restores the original like list.
func (s *postService) ToggleLike(ctx context.Context, who auth.Identity, id primitive.ObjectID) (*models.Post, error) {
	const op = "PostService.ToggleLike"

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, l := range p.Likes {
		if l.User == who.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		p.Likes = append(p.Likes[:idx], p.Likes[idx+1:]...)
	} else {
		p.Likes = append([]models.Like{{User: who.ID}}, p.Likes...)
	}

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save post", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *postService) AddComment(ctx context.Context, who auth.Identity, id primitive.ObjectID, in validation.PostInput) (*models.Post, error) {
	const op = "PostService.AddComment"

	if v := validation.ValidatePostInput(in); !v.IsValid {
		return nil, utils.EV(op, v.Errors)
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = who.Name
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = who.Avatar
	}

	c := models.Comment{
		ID:     primitive.NewObjectID(),
		User:   who.ID,
		Text:   in.Text,
		Name:   name,
		Avatar: avatar,
		Likes:  []models.Like{},
		Date:   time.Now().UTC(),
	}
	p.Comments = append([]models.Comment{c}, p.Comments...)

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save post", err)
	}
	s.invalidate(ctx)
	return p, nil
}

// RemoveComment drops the comment whose id matches commentID. A missing
// id is a silent no-op: the post is re-saved unchanged and still
// returned with 200.
func (s *postService) RemoveComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Post, error) {
	const op = "PostService.RemoveComment"

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	p.Comments = kept

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save post", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *postService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.KeyAllPosts)
	}
}
