package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pickemhq/pickem-api/internal/domain/user"
)

const maxUsernameLength = 50

type UserService struct {
	userRepo user.Repository
}

func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Login resolves a username to an existing user. A miss maps to ErrNotFound
// so the handler can tell the client the name is free to register.
func (s *UserService) Login(ctx context.Context, username string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Login")
	defer span.End()

	username, err := normalizeUsername(username)
	if err != nil {
		return user.User{}, err
	}

	found, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: username=%s", ErrNotFound, username)
	}

	return found, nil
}

func (s *UserService) Create(ctx context.Context, username string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Create")
	defer span.End()

	username, err := normalizeUsername(username)
	if err != nil {
		return user.User{}, err
	}

	created, err := s.userRepo.Create(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return user.User{}, fmt.Errorf("%w: username %s is taken", ErrConflict, username)
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetByID")
	defer span.End()

	if id <= 0 {
		return user.User{}, fmt.Errorf("%w: user id must be greater than zero", ErrInvalidInput)
	}

	found, exists, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%d", ErrNotFound, id)
	}

	return found, nil
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return "", fmt.Errorf("%w: username cannot exceed %d characters", ErrInvalidInput, maxUsernameLength)
	}
	return username, nil
}
