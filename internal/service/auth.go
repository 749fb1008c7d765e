package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yefeblgn/TodoListApp/internal/model"
	"github.com/yefeblgn/TodoListApp/internal/repository"
)

// Validation limits match the mobile client's sign-up form.
const (
	minUsernameLen = 3
	maxUsernameLen = 16
	minPasswordLen = 8
	maxPasswordLen = 64
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenSigner mints session tokens for authenticated users.
type TokenSigner interface {
	Sign(userID string) (string, error)
}

// AuthService handles registration, login and account maintenance
// against the service's own users table.
type AuthService struct {
	userRepo repository.UserRepository
	signer   TokenSigner
}

func NewAuthService(userRepo repository.UserRepository, signer TokenSigner) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		signer:   signer,
	}
}

// --- Input/Output types ---

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User  model.User
	Token string
}

type DeleteAccountInput struct {
	Email    string
	Password string
}

type UpdateUsernameInput struct {
	UserID   string
	Email    string
	Username string
}

type UpdatePasswordInput struct {
	UserID      string
	Email       string
	OldPassword string
	NewPassword string
}

// --- Service methods ---

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	if err := validateUsername(username); err != nil {
		return "", err
	}
	if err := validateEmail(input.Email); err != nil {
		return "", err
	}
	if err := validatePassword(input.Password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, model.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return created.ID, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginOutput, error) {
	if input.Email == "" {
		return LoginOutput{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return LoginOutput{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	user, err := s.verifyPassword(ctx, input.Email, input.Password)
	if err != nil {
		return LoginOutput{}, err
	}

	tok, err := s.signer.Sign(user.ID)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	return LoginOutput{User: user, Token: tok}, nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, input DeleteAccountInput) error {
	if input.Email == "" || input.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	if _, err := s.verifyPassword(ctx, input.Email, input.Password); err != nil {
		return err
	}

	// Hard delete; todos go with the user via ON DELETE CASCADE.
	if err := s.userRepo.DeleteByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *AuthService) UpdateUsername(ctx context.Context, input UpdateUsernameInput) error {
	username := strings.TrimSpace(input.Username)
	if err := validateUsername(username); err != nil {
		return err
	}

	user, err := s.requireUser(ctx, input.UserID, input.Email)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateUsername(ctx, user.ID, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update username: %w", err)
	}
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}

	user, err := s.requireUser(ctx, input.UserID, input.Email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)) != nil {
		return ErrBadCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// verifyPassword loads a user by email and checks the password.
// Wrong email and wrong password collapse into ErrBadCredentials.
func (s *AuthService) verifyPassword(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrBadCredentials
		}
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, ErrBadCredentials
	}
	return user, nil
}

// requireUser loads the user by id and checks the email matches,
// so a stolen id alone cannot redirect account maintenance calls.
func (s *AuthService) requireUser(ctx context.Context, userID, email string) (model.User, error) {
	if userID == "" || email == "" {
		return model.User{}, fmt.Errorf("%w: id and email are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Email != email {
		return model.User{}, ErrNotFound
	}
	return user, nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, minPasswordLen, maxPasswordLen)
	}
	return nil
}
