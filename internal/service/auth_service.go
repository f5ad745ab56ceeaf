package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nat/todo-api/internal/config"
	"github.com/nat/todo-api/internal/domain"
	"github.com/nat/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNationalIDExists   = errors.New("national id already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSigningKey  = errors.New("signing key is not configured")
)

// bcrypt prefixes its output with the version, cost and salt; the first
// 29 bytes are exactly that prefix. Stored separately for schema
// compatibility with the upstream system, verification only needs the
// full hash.
const bcryptSaltLen = 29

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

type SignUpInput struct {
	NationalID string
	Password   string
	Title      string
	FirstName  string
	LastName   string
}

// TokenClaims is the identity recovered from a validated bearer token.
type TokenClaims struct {
	UserID uint
	Role   domain.Role
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNationalIDExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		NationalID:   input.NationalID,
		Salt:         string(hashedPassword[:bcryptSaltLen]),
		PasswordHash: string(hashedPassword),
		Title:        input.Title,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, nationalID, password string) (string, error) {
	user, err := s.userRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// CompareHashAndPassword is constant-time and fails closed on a
	// malformed stored hash.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", ErrMissingSigningKey
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": user.Role.String(),
		"iss":  s.cfg.JWTIssuer,
		"aud":  s.cfg.JWTAudience,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWTExpiration).Unix(),
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken checks signature, issuer, audience and expiry (no clock
// skew allowance) and recovers the caller's identity.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithAudience(s.cfg.JWTAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || userID == 0 {
		return nil, ErrInvalidToken
	}

	// Role mismatches are the middleware's concern (forbidden, not
	// unauthenticated); only absence makes the token invalid here.
	role, _ := claims["role"].(string)
	if role == "" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID: uint(userID),
		Role:   domain.Role(role),
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
