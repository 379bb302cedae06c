package services

import (
	"context"
	"errors"
	"time"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/repositories"
	"backoffice-service/store"
	"backoffice-service/utils"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users     *repositories.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewUserService(users *repositories.UserRepository, jwtSecret string, jwtExpiry time.Duration) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	exists, err := s.users.Exists(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCashier
	}

	user := models.User{Username: req.Username, Password: string(hash), Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.User{Username: user.Username, Role: user.Role}, nil
}

// Login verifies the credentials and issues a JWT. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperrors.Unauthorized("Username or password is wrong")
		}
		return "", apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", apperrors.Unauthorized("Username or password is wrong")
	}

	token, err := utils.GenerateToken(user.Username, user.Role, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return token, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	user.Password = ""
	return user, nil
}

// List pages through users. An unknown role filter yields an empty page
// rather than an error.
func (s *UserService) List(ctx context.Context, page, limit int, role string) ([]models.User, models.Pagination, error) {
	if role != "" && role != models.RoleManager && role != models.RoleCashier {
		return []models.User{}, models.Pagination{Total: 0, Page: page, Limit: limit}, nil
	}

	users, total, err := s.users.List(ctx, page, limit, role)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return users, models.Pagination{Total: total, Page: page, Limit: limit}, nil
}

func (s *UserService) Update(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	merged := patch.Apply(*user)
	if err := s.users.Update(ctx, merged); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.User{Username: merged.Username, Role: merged.Role}, nil
}
