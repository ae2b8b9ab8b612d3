package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/auth"
	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

var (
	// ErrDuplicateUser means the email or username is already taken.
	ErrDuplicateUser = errors.New("email or username already exists")
	// ErrInvalidCredentials covers unknown user and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService handles registration, login and password changes.
type UserService struct {
	store  store.Store
	tokens *auth.Manager
	log    *zap.SugaredLogger
}

func NewUserService(st store.Store, tokens *auth.Manager, log *zap.SugaredLogger) *UserService {
	return &UserService{store: st, tokens: tokens, log: log}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	UserName   string
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	Password   string
}

// Register creates an account after checking the username and email are
// free.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	if in.UserName == "" {
		return nil, &ledger.ValidationError{Field: "UserName"}
	}
	if in.Email == "" {
		return nil, &ledger.ValidationError{Field: "Email"}
	}
	if in.Password == "" {
		return nil, &ledger.ValidationError{Field: "Password"}
	}

	_, err := s.store.Users().FindByNameOrEmail(ctx, in.UserName, in.Email)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		UserName:     in.UserName,
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Status:       string(ledger.StatusActive),
	}
	if err := s.store.Users().Add(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Infow("user registered", "user_id", u.ID, "user_name", u.UserName)
	return u, nil
}

// LoginResult is the token plus a user summary for the client.
type LoginResult struct {
	Token    string
	UserID   uint64
	UserName string
	Email    string
}

// Login verifies the credentials and issues a token. The UserName field
// matches either username or email.
func (s *UserService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	if userName == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.store.Users().FindByNameOrEmail(ctx, userName, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, UserID: u.ID, UserName: u.UserName, Email: u.Email}, nil
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return &ledger.ValidationError{Field: "NewPassword"}
	}
	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.Users().UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.log.Infow("password changed", "user_id", userID)
	return nil
}
