package handlers_test

// In-memory repository fakes backing the end-to-end handler tests.

import (
	"context"
	"time"

	"github.com/llvasconcellos/devconnector/internal/models"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[primitive.ObjectID]models.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

type memProfileRepo struct {
	profiles map[primitive.ObjectID]models.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[primitive.ObjectID]models.Profile{}}
}

func (r *memProfileRepo) Create(_ context.Context, p *models.Profile) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	r.profiles[p.ID] = *p
	return nil
}

func (r *memProfileRepo) GetByUser(_ context.Context, user primitive.ObjectID) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.User == user {
			out := p
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *memProfileRepo) GetByHandle(_ context.Context, handle string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.Handle == handle {
			out := p
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *memProfileRepo) ListAll(_ context.Context) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProfileRepo) Update(_ context.Context, user primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	for id, p := range r.profiles {
		if p.User != user {
			continue
		}
		if v, ok := fields["handle"].(string); ok {
			p.Handle = v
		}
		if v, ok := fields["status"].(string); ok {
			p.Status = v
		}
		if v, ok := fields["skills"].([]string); ok {
			p.Skills = v
		}
		if v, ok := fields["company"].(string); ok {
			p.Company = v
		}
		if v, ok := fields["website"].(string); ok {
			p.Website = v
		}
		if v, ok := fields["location"].(string); ok {
			p.Location = v
		}
		if v, ok := fields["social"].(models.SocialLinks); ok {
			p.Social = v
		}
		r.profiles[id] = p
		out := p
		return &out, nil
	}
	return nil, utils.ErrNotFound
}

func (r *memProfileRepo) Save(_ context.Context, p *models.Profile) error {
	r.profiles[p.ID] = *p
	return nil
}

func (r *memProfileRepo) DeleteByUser(_ context.Context, user primitive.ObjectID) error {
	for id, p := range r.profiles {
		if p.User == user {
			delete(r.profiles, id)
		}
	}
	return nil
}

type memPostRepo struct {
	posts map[primitive.ObjectID]models.Post
	order []primitive.ObjectID
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[primitive.ObjectID]models.Post{}}
}

func (r *memPostRepo) Create(_ context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	r.posts[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *memPostRepo) ListAll(_ context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.posts[r.order[i]]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPostRepo) Save(_ context.Context, p *models.Post) error {
	r.posts[p.ID] = *p
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.posts, id)
	return nil
}
