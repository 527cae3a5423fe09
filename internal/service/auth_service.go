package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/repository"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/validation"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

type sessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type loginRecorder interface {
	RecordLogin(success bool)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService registers users and manages their login sessions.
type AuthService struct {
	users     authUserRepository
	sessions  sessionStore
	validator *validation.Validator
	logger    *zap.Logger
	config    AuthConfig
	recorder  loginRecorder
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, sessions sessionStore, validate *validation.Validator, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if config.Expiration <= 0 {
		config.Expiration = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, validator: validate, logger: logger, config: config}
}

// WithLoginRecorder reports login outcomes to r.
func (s *AuthService) WithLoginRecorder(r loginRecorder) *AuthService {
	s.recorder = r
	return s
}

// Register creates an account after checking the payload and the password policy.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	fields := s.validator.Struct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	if _, bad := fields["password"]; !bad {
		if problems := passwordProblems(req.Password, req.Username, req.Email, req.FirstName, req.LastName); len(problems) > 0 {
			fields["password"] = strings.Join(problems, " ")
		}
	}
	if _, bad := fields["username"]; !bad && req.Username != "" {
		if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
			fields["username"] = "A user with that username already exists."
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Internal(err, "failed to check username")
		}
	}
	if len(fields) > 0 {
		return nil, appErrors.Validation("invalid registration payload", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, appErrors.Validation("invalid registration payload", map[string]string{
				"username": "A user with that username already exists.",
			})
		}
		return nil, appErrors.Internal(err, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	info := user.Info()
	return &info, nil
}

// Login verifies credentials and opens a session. Unknown users and wrong passwords fail alike.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if fields := s.validator.Struct(req); fields != nil {
		s.record(false)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.record(false)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Internal(err, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.record(false)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.Expiration),
	}

	token, err := s.generateToken(user, session)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Internal(err, "failed to persist session")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}
	user.LastLogin = &now

	s.record(true)
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("session_id", session.ID))
	return &models.LoginResponse{
		UserInfo:    user.Info(),
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Logout revokes the session behind token. Missing or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.ValidateToken(token)
	if err != nil {
		s.logger.Debug("logout with invalid token", zap.Error(err))
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return appErrors.Internal(err, "failed to revoke session")
	}
	s.logger.Info("user logged out", zap.String("user_id", claims.UserID), zap.String("session_id", claims.ID))
	return nil
}

// Authenticate validates token and checks that its session has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.JWTClaims, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	active, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check session")
	}
	if !active {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or logged out")
	}
	return claims, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateToken(user *models.User, session *models.Session) (string, error) {
	claims := &models.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			NotBefore: jwt.NewNumericDate(session.CreatedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) record(success bool) {
	if s.recorder != nil {
		s.recorder.RecordLogin(success)
	}
}
