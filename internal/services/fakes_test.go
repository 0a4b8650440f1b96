package services

// In-memory repository fakes. They hand out copies so a test can tell
// whether a service actually persisted a mutation or only changed its
// local copy.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/llvasconcellos/devconnector/internal/models"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCache is an in-memory cache.Cache that records invalidations so
// tests can assert which keys a mutation dropped.
type fakeCache struct {
	data map[string][]byte
	dels []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.dels = append(c.dels, k)
	}
	return nil
}

func (c *fakeCache) has(key string) bool {
	_, ok := c.data[key]
	return ok
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]models.Profile // by profile id
	saves    int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]models.Profile{}}
}

func cloneProfile(p models.Profile) models.Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Experience = append([]models.Experience(nil), p.Experience...)
	p.Education = append([]models.Education(nil), p.Education...)
	return p
}

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	r.profiles[p.ID] = cloneProfile(*p)
	return nil
}

func (r *fakeProfileRepo) GetByUser(_ context.Context, user primitive.ObjectID) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.User == user {
			out := cloneProfile(p)
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeProfileRepo) GetByHandle(_ context.Context, handle string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.Handle == handle {
			out := cloneProfile(p)
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeProfileRepo) ListAll(_ context.Context) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, user primitive.ObjectID, fields bson.M) (*models.Profile, error) {
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
		out := cloneProfile(p)
		return &out, nil
	}
	return nil, utils.ErrNotFound
}

func (r *fakeProfileRepo) Save(_ context.Context, p *models.Profile) error {
	r.saves++
	r.profiles[p.ID] = cloneProfile(*p)
	return nil
}

func (r *fakeProfileRepo) DeleteByUser(_ context.Context, user primitive.ObjectID) error {
	for id, p := range r.profiles {
		if p.User == user {
			delete(r.profiles, id)
		}
	}
	return nil
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]models.Post
	order []primitive.ObjectID // insertion order, newest last
	saves int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]models.Post{}}
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]models.Like(nil), p.Likes...)
	comments := make([]models.Comment, len(p.Comments))
	for i, c := range p.Comments {
		c.Likes = append([]models.Like(nil), c.Likes...)
		comments[i] = c
	}
	p.Comments = comments
	return p
}

func (r *fakePostRepo) Create(_ context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	r.posts[p.ID] = clonePost(*p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.posts[r.order[i]]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (r *fakePostRepo) Save(_ context.Context, p *models.Post) error {
	r.saves++
	r.posts[p.ID] = clonePost(*p)
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.posts, id)
	return nil
}
