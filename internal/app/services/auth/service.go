package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainuser "stayhub/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
	ErrInvalidToken       = errors.New("auth: invalid token")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenManager issues and verifies the stateless access/refresh token pair.
type TokenManager interface {
	IssueAccess(userID string, now time.Time) (string, error)
	IssueRefresh(userID string, now time.Time) (string, error)
	ParseAccess(token string) (string, error)
	ParseRefresh(token string) (string, error)
}

type TokenPair struct {
	Access  string
	Refresh string
}

type Service struct {
	Users     domainuser.Repository
	Passwords PasswordHasher
	Tokens    TokenManager
	Logger    *slog.Logger
}

type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User   *domainuser.User
	Tokens TokenPair
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return nil, domainuser.ErrEmailRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, domainuser.ErrNameRequired
	}
	if err := s.validatePassword(params.Password); err != nil {
		return nil, err
	}
	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return nil, domainuser.ErrEmailAlreadyUsed
	} else if !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}
	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	user, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(uuid.NewString()),
		Email:        email,
		Name:         params.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	email := domainuser.NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Passwords.Compare(user.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user authenticated", "user_id", user.ID)
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh trades a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	userID, err := s.Tokens.ParseRefresh(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// ResolveAccess returns the user an access token belongs to.
func (s *Service) ResolveAccess(ctx context.Context, accessToken string) (*domainuser.User, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	userID, err := s.Tokens.ParseAccess(strings.TrimSpace(accessToken))
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID domainuser.ID, description string) (*domainuser.User, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	user, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.UpdateDescription(description, time.Now())
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issueTokens(user *domainuser.User) (TokenPair, error) {
	now := time.Now()
	access, err := s.Tokens.IssueAccess(string(user.ID), now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.Tokens.IssueRefresh(string(user.ID), now)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *Service) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Users == nil:
		return errors.New("auth: user repository required")
	case s.Passwords == nil:
		return errors.New("auth: password hasher required")
	case s.Tokens == nil:
		return errors.New("auth: token manager required")
	default:
		return nil
	}
}
