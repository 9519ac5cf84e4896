package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/data/repos"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/apierr"
	"github.com/yungbote/cablehouse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

const DefaultAccessTTL = 8 * time.Hour

type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	// EnsureAdmin creates the bootstrap admin when no user holds that name.
	EnsureAdmin(ctx context.Context, username, password string) error
	// ParseToken validates a signed token and returns the caller it names.
	ParseToken(tokenString string) (*ctxutil.RequestData, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func (as *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, validationErr("username and password are required")
	}

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		as.log.Debug("password mismatch", "username", username)
		return nil, invalidCredentials()
	}

	token, exp, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	as.log.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (as *authService) Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, validationErr("username is required")
	}
	if len(password) < 6 {
		return nil, validationErr("password must be at least 6 characters")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, validationErr("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *domain.User
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return apierr.New(http.StatusConflict, "username_taken", fmt.Errorf("%w: %s", ErrUsernameTaken, username))
		}
		users, err := as.userRepo.Create(ctx, tx, []*domain.User{{
			Username:     username,
			PasswordHash: string(hash),
			Role:         role,
		}})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		created = users[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

func (as *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil
	}
	existing, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return fmt.Errorf("load admin: %w", err)
	}
	if existing != nil {
		if existing.Role != domain.RoleAdmin {
			as.log.Warn("bootstrap admin name held by non-admin", "username", username, "role", existing.Role)
		}
		return nil
	}
	if _, err := as.Register(ctx, username, password, domain.RoleAdmin); err != nil {
		return err
	}
	return nil
}

func (as *authService) generateAccessToken(user *domain.User) (string, time.Time, error) {
	now := as.now()
	exp := now.Add(as.accessTTL)
	claims := JWTClaims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	return signed, exp, err
}

func (as *authService) ParseToken(tokenString string) (*ctxutil.RequestData, error) {
	if tokenString == "" {
		return nil, unauthorized(errors.New("missing token"))
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return nil, unauthorized(fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return nil, unauthorized(errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, unauthorized(fmt.Errorf("invalid user id in token: %w", err))
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, unauthorized(err)
	}
	return &ctxutil.RequestData{
		UserID:      userID,
		Username:    claims.Username,
		Role:        role,
		TokenString: tokenString,
	}, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func invalidCredentials() error {
	return apierr.New(http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials)
}

func unauthorized(err error) error {
	return apierr.New(http.StatusUnauthorized, "unauthorized", err)
}
