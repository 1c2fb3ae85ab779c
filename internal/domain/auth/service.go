package auth

import (
	"context"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/pkg/logger"
)

// Repository defines storage operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// Service provides login and account management.
type Service struct {
	repo      Repository
	tokens    *TokenIssuer
	txManager tx.Manager
}

// NewService creates the auth service.
func NewService(repo Repository, tokens *TokenIssuer, txm tx.Manager) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		txManager: txm,
	}
}

// LoginResult carries the signed token and the authenticated user.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords produce the same error so usernames cannot be probed.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !u.Active || !u.CheckPassword(password) {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "username", u.Username)

	return &LoginResult{Token: token, User: u}, nil
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, username, password string, role Role) (*User, error) {
	if existing, err := s.repo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("user", "username", username)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	u, err := NewUser(username, password, role)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, oldPassword, newPassword string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.CheckPassword(oldPassword) {
		return apperror.NewUnauthorized("invalid credentials")
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, u)
	})
}

// Verify validates a bearer token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
