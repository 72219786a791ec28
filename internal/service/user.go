package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"LoreKeeper/internal/model"
	"LoreKeeper/internal/repo"
)

var (
	// ErrLoginTaken rejects registration with an already used login.
	ErrLoginTaken = errors.New("login already taken")
	// ErrInvalidCredentials covers both unknown login and wrong password.
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// UserService handles registration and login of facilitator accounts.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	existing, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{Login: login, Password: string(hash)})
}

// Login checks credentials and returns the matching user.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
