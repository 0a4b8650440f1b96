package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/llvasconcellos/devconnector/internal/cache"
	"github.com/llvasconcellos/devconnector/internal/models"
	mongorepo "github.com/llvasconcellos/devconnector/internal/repositories/mongo"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const profileListTTL = 30 * time.Second

type ProfileService interface {
	GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	ListAll(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, user primitive.ObjectID, in validation.ProfileInput) (*models.Profile, error)
	AddExperience(ctx context.Context, user primitive.ObjectID, in validation.ExperienceInput) (*models.Profile, error)
	AddEducation(ctx context.Context, user primitive.ObjectID, in validation.EducationInput) (*models.Profile, error)
	RemoveExperience(ctx context.Context, user, expID primitive.ObjectID) (*models.Profile, error)
	RemoveEducation(ctx context.Context, user, eduID primitive.ObjectID) (*models.Profile, error)
	DeleteAccount(ctx context.Context, user primitive.ObjectID) error
}

type profileService struct {
	profiles mongorepo.ProfileRepository
	users    mongorepo.UserRepository
	cache    cache.Cache
}

func NewProfileService(profiles mongorepo.ProfileRepository, users mongorepo.UserRepository, c cache.Cache) ProfileService {
	return &profileService{profiles: profiles, users: users, cache: c}
}

func (s *profileService) GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error) {
	const op = "ProfileService.GetByUser"

	p, err := s.profiles.GetByUser(ctx, user)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return s.withOwner(ctx, p), nil
}

func (s *profileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	const op = "ProfileService.GetByHandle"

	p, err := s.profiles.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this handle", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return s.withOwner(ctx, p), nil
}

func (s *profileService) ListAll(ctx context.Context) ([]models.Profile, error) {
	const op = "ProfileService.ListAll"

	if s.cache != nil {
		var cached []models.Profile
		if hit, err := s.cache.GetJSON(ctx, cache.KeyAllProfiles, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list profiles", err)
	}
	if out == nil {
		out = []models.Profile{}
	}
	for i := range out {
		s.withOwner(ctx, &out[i])
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cache.KeyAllProfiles, out, profileListTTL)
	}
	return out, nil
}

// Upsert creates the caller's profile on first POST and updates it in
// place afterwards. The handle-uniqueness check and the insert are two
// separate round-trips; the unique index on handle closes the window.
func (s *profileService) Upsert(ctx context.Context, user primitive.ObjectID, in validation.ProfileInput) (*models.Profile, error) {
	const op = "ProfileService.Upsert"

	if v := validation.ValidateProfileInput(in); !v.IsValid {
		return nil, utils.EV(op, v.Errors)
	}

	skills := splitSkills(in.Skills)

	fields := bson.M{
		"user":   user,
		"handle": in.Handle,
		"status": in.Status,
		"skills": skills,
	}
	if in.Company != "" {
		fields["company"] = in.Company
	}
	if in.Website != "" {
		fields["website"] = in.Website
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}

	social := models.SocialLinks{
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Linkedin:  in.Linkedin,
		Instagram: in.Instagram,
	}
	fields["social"] = social

	existing, err := s.profiles.GetByUser(ctx, user)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if existing != nil && err == nil {
		updated, err := s.profiles.Update(ctx, user, fields)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
		}
		s.invalidate(ctx)
		return s.withOwner(ctx, updated), nil
	}

	// create path: re-check handle uniqueness first
	if _, err := s.profiles.GetByHandle(ctx, in.Handle); err == nil {
		return nil, utils.EC(op, "handle", "Handle already exists")
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check handle", err)
	}

	p := &models.Profile{
		User:       user,
		Handle:     in.Handle,
		Status:     in.Status,
		Skills:     skills,
		Company:    in.Company,
		Website:    in.Website,
		Location:   in.Location,
		Social:     social,
		Experience: []models.Experience{},
		Education:  []models.Education{},
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create profile", err)
	}
	s.invalidate(ctx)
	return s.withOwner(ctx, p), nil
}

func (s *profileService) AddExperience(ctx context.Context, user primitive.ObjectID, in validation.ExperienceInput) (*models.Profile, error) {
	const op = "ProfileService.AddExperience"

	if v := validation.ValidateExperienceInput(in); !v.IsValid {
		return nil, utils.EV(op, v.Errors)
	}

	p, err := s.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	// newest first
	p.Experience = append([]models.Experience{entry}, p.Experience...)

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *profileService) AddEducation(ctx context.Context, user primitive.ObjectID, in validation.EducationInput) (*models.Profile, error) {
	const op = "ProfileService.AddEducation"

	if v := validation.ValidateEducationInput(in); !v.IsValid {
		return nil, utils.EV(op, v.Errors)
	}

	p, err := s.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	p.Education = append([]models.Education{entry}, p.Education...)

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	s.invalidate(ctx)
	return p, nil
}

// RemoveExperience drops the entry whose id matches expID. A missing id
// is a silent no-op: the profile is re-saved unchanged.
func (s *profileService) RemoveExperience(ctx context.Context, user, expID primitive.ObjectID) (*models.Profile, error) {
	const op = "ProfileService.RemoveExperience"

	p, err := s.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *profileService) RemoveEducation(ctx context.Context, user, eduID primitive.ObjectID) (*models.Profile, error) {
	const op = "ProfileService.RemoveEducation"

	p, err := s.GetByUser(ctx, user)
	if err != nil {
		return nil, err
	}

	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	s.invalidate(ctx)
	return p, nil
}

// DeleteAccount removes the caller's profile and user together. Posts
// are left in place; the cascade is limited to these two entities.
func (s *profileService) DeleteAccount(ctx context.Context, user primitive.ObjectID) error {
	const op = "ProfileService.DeleteAccount"

	if err := s.profiles.DeleteByUser(ctx, user); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete profile", err)
	}
	if err := s.users.Delete(ctx, user); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete user", err)
	}
	s.invalidate(ctx)
	return nil
}

// withOwner populates the owning user's name/avatar into the response.
// A missing user just leaves the snapshot empty.
func (s *profileService) withOwner(ctx context.Context, p *models.Profile) *models.Profile {
	u, err := s.users.GetByID(ctx, p.User)
	if err != nil {
		return p
	}
	p.Owner = &models.UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	return p
}

func (s *profileService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, cache.KeyAllProfiles)
	}
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
