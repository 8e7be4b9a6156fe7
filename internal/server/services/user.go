// Package services holds the server-side business logic between the
// transports and the repositories. Repository errors are collapsed into the
// sentinels in internal/common before they leave this package.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/dbx"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/config"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/dmitrijs2005/invoicedash/internal/server/models"
	"github.com/dmitrijs2005/invoicedash/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService registers users and issues, rotates and revokes sessions.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	log                          logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		log:                          log.With("module", "users"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// dummyHash is compared against when the email is unknown so that both
// failure paths pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("invoicedash-timing-equaliser")
	return h
})

// Authenticate checks credentials and starts a session. Malformed input,
// unknown email and wrong password all yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*TokenPair, error) {
	creds := forms.CredentialsSchema.Validate(url.Values{"email": {email}, "password": {password}})
	if !creds.OK {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, creds.Data.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(creds.Data.Password, dummyHash())
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "user lookup failed", err)
	}

	if !auth.CheckPassword(creds.Data.Password, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, s.internal(ctx, "token issue failed", err)
	}
	s.log.Info(ctx, "user signed in", "user_id", user.ID)
	return pair, nil
}

// Register inserts a user whose password is already hashed and returns the
// number of rows written. A taken email yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, email, name, passwordHash string) (int64, error) {
	user := &models.User{Email: email, Name: name, Password: passwordHash}
	n, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return 0, common.ErrorConflict
		}
		return 0, s.internal(ctx, "user insert failed", err)
	}
	return n, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Unknown tokens yield common.ErrorUnauthorized,
// expired ones ErrRefreshTokenExpired, anything else common.ErrorInternal.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "refresh token lookup failed", err)
	}
	if token.Expired(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetUserByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	}); err != nil {
		return nil, s.internal(ctx, "refresh token rotation failed", err)
	}
	return pair, nil
}

// Logout revokes refreshToken. Unknown tokens are not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return s.internal(ctx, "refresh token delete failed", err)
	}
	return nil
}

// ParseAccessToken verifies an access token and returns its claims.
func (s *UserService) ParseAccessToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

func (s *UserService) UserIDFromAccessToken(token string) (string, error) {
	claims, err := s.ParseAccessToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (s *UserService) internal(ctx context.Context, msg string, err error) error {
	return internalError(ctx, s.log, msg, err)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}
	expires := s.now().Add(s.refreshTokenValidityDuration)
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, user.ID, refresh, expires); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
