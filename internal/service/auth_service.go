package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pptq-absensi/config"
	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/repository"
	"pptq-absensi/pkg/jwt"
)

// Roles.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RolePembina    = "pembina"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenStore server-side token state. *redis.Client implements it.
type TokenStore interface {
	TouchIdle(ctx context.Context, jti string, ttl time.Duration) error
	DropIdle(ctx context.Context, jti string) error
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService login and logout.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	LoginPembina(ctx context.Context, req *dto.PembinaLoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.AuthConfig
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	tokens TokenStore // nil without Redis
	logger *zap.Logger
}

// NewAuthService creates an AuthService. tokens may be nil.
func NewAuthService(cfg *config.AuthConfig, repo *repository.Repository, jwtMgr *jwt.Manager, tokens TokenStore, logger *zap.Logger) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks the root pair first, then the admin table.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)

	if s.isRoot(username, req.Password) {
		return s.issue(ctx, dto.UserInfo{
			ID:       username,
			Role:     RoleSuperadmin,
			Name:     "Super Admin",
			Username: username,
		})
	}

	admin, err := s.repo.Admin.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load admin failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, dto.UserInfo{
		ID:       strconv.FormatUint(uint64(admin.ID), 10),
		Role:     RoleAdmin,
		Name:     admin.Name,
		Username: admin.Username,
	})
}

// LoginPembina matches the external supervisor id alone.
func (s *authService) LoginPembina(ctx context.Context, req *dto.PembinaLoginRequest) (*dto.TokenResponse, error) {
	sp, err := s.repo.Supervisor.GetByIDPembina(ctx, strings.TrimSpace(req.IDPembina))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load supervisor failed", zap.Error(err))
		return nil, err
	}

	return s.issue(ctx, dto.UserInfo{
		ID:   sp.IDPembina,
		Role: RolePembina,
		Name: sp.Nama,
	})
}

// Logout revokes the token and ends its idle window.
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", jti), zap.Error(err))
		return err
	}
	if err := s.tokens.DropIdle(ctx, jti); err != nil {
		s.logger.Warn("drop idle key failed", zap.String("jti", jti), zap.Error(err))
	}
	return nil
}

func (s *authService) isRoot(username, password string) bool {
	if s.cfg.RootUsername == "" || s.cfg.RootPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.RootUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.RootPassword)) == 1
	return userOK && passOK
}

func (s *authService) issue(ctx context.Context, user dto.UserInfo) (*dto.TokenResponse, error) {
	token, claims, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role, user.Name)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}

	if s.tokens != nil {
		if err := s.tokens.TouchIdle(ctx, claims.ID, s.cfg.IdleTimeout); err != nil {
			s.logger.Error("register idle key failed", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("login", zap.String("role", user.Role), zap.String("user_id", user.ID))

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		IdleTimeout: int(s.cfg.IdleTimeout.Seconds()),
		User:        user,
	}, nil
}
