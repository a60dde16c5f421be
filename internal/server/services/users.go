// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks, and issuing
// access tokens for registered and guest identities.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/server/auth"
	"github.com/dmitrijs2005/trackit/internal/server/config"
	"github.com/dmitrijs2005/trackit/internal/server/models"
	"github.com/dmitrijs2005/trackit/internal/server/repositories/repomanager"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the user payload returned with a token. Guest identities are
// synthetic: they have ID zero and no database row.
type Identity struct {
	ID        int64
	Email     string
	Username  string
	CreatedAt time.Time
	IsGuest   bool
}

// AuthResult bundles a signed access token with the identity it represents.
type AuthResult struct {
	AccessToken string
	User        Identity
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token
// - GuestLogin: mint an ephemeral token with no database row
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	guestTokenValidityDuration  time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		guestTokenValidityDuration:  cfg.GuestTokenValidityDuration,
	}
}

// Register creates an account after checking uniqueness and credential rules.
// Conflicts surface as common.ErrEmailTaken / common.ErrUsernameTaken so the
// handler can report the exact field.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if len(password) < 8 {
		return nil, common.ErrPasswordLength
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, fmt.Errorf("%w: username must be between 3 and 50 characters", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		Email:          email,
		Username:       username,
		HashedPassword: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and mints an access token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Email},
		UserID:           user.ID,
		Username:         user.Username,
	}, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{
		AccessToken: token,
		User: Identity{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// GuestLogin mints a short-lived token for a throwaway identity. Nothing is
// written to the database; the identity exists only inside the token.
func (s *UserService) GuestLogin(ctx context.Context) (*AuthResult, error) {
	guestID := uuid.New().String()
	username := "Guest_" + guestID[:8]
	email := fmt.Sprintf("guest_%s@trackit.temp", guestID)

	token, err := auth.GenerateToken(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: email},
		Username:         username,
		IsGuest:          true,
	}, s.jwtSecret, s.guestTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{
		AccessToken: token,
		User: Identity{
			Email:    email,
			Username: username,
			IsGuest:  true,
		},
	}, nil
}
