package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
	"github.com/libhub/library-api/internal/notifier"
	"github.com/libhub/library-api/internal/shaping"
	"github.com/libhub/library-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Blacklist revokes refresh tokens by JTI. Backed by redis in production.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// UserService runs the user create pipeline and the auth/session flows.
type UserService struct {
	Repo      repository.UserRepository
	JWT       *helpers.JWTManager
	Blacklist Blacklist
	Notifier  notifier.Notifier
	Logger    *logrus.Logger
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, bl Blacklist, n notifier.Notifier, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Blacklist: bl, Notifier: n, Logger: logger}
}

// CreateUser validates the role against the enumeration, hashes the
// password, forces is_staff for privileged roles and persists the user.
// The confirmation field was already checked for equality at the binding
// layer and is discarded here. A moderator creation fires the notifier
// exactly once, after the persist step.
func (s *UserService) CreateUser(ctx context.Context, in shaping.UserCreateInput) (*entity.User, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
		Gender:    in.Gender,
		Password:  hash,
		IsStaff:   role.Staff(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if u.IsStaff && u.Role == entity.RoleModerator {
		s.Notifier.ModeratorCreated(ctx, u.Username, u.Email)
	}
	return u, nil
}

// Authenticate validates username/password without issuing tokens. A
// missing user and a wrong password are indistinguishable to the caller;
// any other store failure is surfaced for the 500 path.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates a fresh access/refresh pair for the user.
func (s *UserService) IssueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Logout blacklists the refresh token so it can no longer mint access
// tokens. An unparsable or expired token means there is nothing to revoke;
// only a blacklist write failure is an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	return s.Blacklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// Refresh rotates the token pair: the presented refresh token must be
// valid and not blacklisted; it is revoked as part of the rotation.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	revoked, err := s.Blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if revoked {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Blacklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return TokenPair{}, err
	}
	return s.IssueTokens(u)
}

// GetProfile loads a user by id for the protected profile endpoint.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
