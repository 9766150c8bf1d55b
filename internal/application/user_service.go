package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
)

const usersListKey = "users:list"

type UserService struct {
	Repo     repo.UserRepository
	Hasher   PasswordHasher
	Cache    ListCache
	CacheTTL time.Duration
	Logger   logrus.FieldLogger
}

func NewUserService(r repo.UserRepository, hasher PasswordHasher, cache ListCache, cacheTTL time.Duration, logger logrus.FieldLogger) *UserService {
	return &UserService{Repo: r, Hasher: hasher, Cache: cache, CacheTTL: cacheTTL, Logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]entity.PublicUser, error) {
	out, err := cachedList(ctx, s.Cache, s.CacheTTL, s.Logger, usersListKey, func(ctx context.Context) ([]entity.PublicUser, error) {
		users, err := s.Repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return entity.PublicUsers(users), nil
	})
	if err != nil {
		return nil, internalError("Failed to fetch users", err)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, MsgUserNotFound, "Failed to fetch user")
	}
	pu := u.Public()
	return &pu, nil
}

// Create stores a new user with a hashed password and the default role.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*entity.PublicUser, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, validationError("Missing required fields: name, email, password")
	}

	hash, err := s.Hasher.Hash(password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, validationError(MsgPasswordTooLong)
	}
	if err != nil {
		return nil, internalError("Failed to create user", err)
	}

	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: entity.RoleUser}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, mapWriteErr(err, MsgEmailExists, "", "Failed to create user")
	}
	invalidate(ctx, s.Cache, s.Logger, usersListKey)
	pu := u.Public()
	return &pu, nil
}

func (s *UserService) Update(ctx context.Context, id int64, name, email string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return validationError("Name and email are required")
	}
	if err := s.Repo.Update(ctx, &entity.User{ID: id, Name: name, Email: email}); err != nil {
		return mapWriteErr(err, MsgEmailExists, MsgUserNotFound, "Failed to update user")
	}
	invalidate(ctx, s.Cache, s.Logger, usersListKey)
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapLookupErr(err, MsgUserNotFound, "Failed to delete user")
	}
	invalidate(ctx, s.Cache, s.Logger, usersListKey)
	return nil
}

func mapLookupErr(err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundError(notFoundMsg)
	}
	return internalError(failMsg, err)
}

// mapWriteErr translates store errors from inserts and updates. An empty message disables that mapping.
func mapWriteErr(err error, conflictMsg, notFoundMsg, failMsg string) error {
	switch {
	case conflictMsg != "" && errors.Is(err, repo.ErrConflict):
		return conflictError(conflictMsg)
	case notFoundMsg != "" && errors.Is(err, repo.ErrNotFound):
		return notFoundError(notFoundMsg)
	}
	return internalError(failMsg, err)
}
