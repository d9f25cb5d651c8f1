// Package auth registers and authenticates users and issues their session
// tokens. Authentication is stateless: nothing but the user record is kept.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shouta256/todo-next-spring/internal/model"
)

// UserStore is the persistence the service needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, username, passwordDigest string) (*model.User, error)
}

// Service implements registration, login and token issuance.
type Service struct {
	users  UserStore
	hasher Hasher
	tokens *Tokens
	logger *log.Logger
}

// NewService creates an auth service.
func NewService(users UserStore, hasher Hasher, tokens *Tokens, logger *log.Logger) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user. It fails with model.ErrConflict when the username
// is taken, whether the check here or the store's unique index catches it.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Attempted registration with existing username", "username", username)
		return nil, model.ErrConflict
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registering user", "username", username)
	user, err := s.users.CreateUser(ctx, username, digest)
	if errors.Is(err, model.ErrConflict) {
		s.logger.Warn("Attempted registration with existing username", "username", username)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login returns the user whose password matches. Unknown usernames and wrong
// passwords both fail with model.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.Password) {
		s.logger.Warn("Invalid login attempt", "username", username)
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Info("User logged in", "username", username)
	return user, nil
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(username string, userID int64) (string, error) {
	return s.tokens.Issue(username, userID)
}

// VerifyToken returns the claims of a token this process issued.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
