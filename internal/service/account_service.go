// Package service implements the application's domain logic on top of the
// repository layer. Every mutating operation validates its input before any
// write and checks ownership before any destructive change.
package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the original deployment used; DefaultCost is 10.
const bcryptCost = bcrypt.DefaultCost

// AccountService handles registration and credential verification.
type AccountService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Register creates a new user with a hashed password and gravatar URL.
// A taken email yields a Conflict; no second user is ever created.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateRegistration(in.Name, in.Email, in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Avatar:   GravatarURL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := validation.ValidateLogin(in.Email, in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetUser returns the user for the given id.
func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GravatarURL builds a gravatar image URL for the email: 200px,
// PG-rated, with the "mystery man" default.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
