package services

import (
	"context"
	"errors"

	"github.com/llvasconcellos/devconnector/internal/auth"
	"github.com/llvasconcellos/devconnector/internal/models"
	mongorepo "github.com/llvasconcellos/devconnector/internal/repositories/mongo"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
)

type UserService interface {
	Register(ctx context.Context, in validation.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, in validation.LoginInput) (string, error)
}

type userService struct {
	users  mongorepo.UserRepository
	tokens *auth.Manager
}

func NewUserService(users mongorepo.UserRepository, tokens *auth.Manager) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	const op = "UserService.Register"

	if v := validation.ValidateRegisterInput(in); !v.IsValid {
		return nil, utils.EV(op, v.Errors)
	}

	// duplicate check and insert are separate round-trips; the unique
	// index on email is the backstop
	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, utils.EC(op, "email", "Email already exists")
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Avatar:   in.Avatar,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

// Authenticate verifies the credentials and returns a signed bearer
// token. Unknown email and wrong password produce the same message so
// the response does not reveal which one failed.
func (s *userService) Authenticate(ctx context.Context, in validation.LoginInput) (string, error) {
	const op = "UserService.Authenticate"

	if v := validation.ValidateLoginInput(in); !v.IsValid {
		return "", utils.EV(op, v.Errors)
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeUnauthorized, op, "Invalid credentials", nil)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if err := utils.CheckPassword(u.Password, in.Password); err != nil {
		return "", utils.E(utils.CodeUnauthorized, op, "Invalid credentials", nil)
	}

	tok, err := s.tokens.Issue(auth.Identity{ID: u.ID, Name: u.Name, Avatar: u.Avatar})
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return "Bearer " + tok, nil
}
