package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates backoffice users and issues session tokens
type AuthService struct {
	users     *repositories.UserRepository
	secretKey []byte
	ttl       time.Duration
}

// NewAuthService creates a new auth service. An empty secret leaves the
// service unable to issue or accept tokens.
func NewAuthService(users *repositories.UserRepository, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{users: users, secretKey: []byte(secret), ttl: ttl}
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	}

	token, expiresAt, err := s.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound("user", id, err)
	}
	return user, nil
}

// CreateAdmin creates an admin account, or promotes and resets the password
// of an existing account with the same email
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalidParam("email", "email is required")
	}
	if len(password) < utils.MinPasswordLength {
		return nil, invalidParam("password", "password must be at least %d characters", utils.MinPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		user = &models.User{Email: email}
	case err != nil:
		return nil, err
	}

	user.Password = string(hashedPassword)
	user.Role = models.RoleAdmin
	if name != "" {
		user.Name = &name
	}

	if user.ID == "" {
		err = s.users.Create(ctx, user)
	} else {
		err = s.users.Save(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateToken generates a new JWT token for a user
func (s *AuthService) GenerateToken(userID, email, role string) (string, time.Time, error) {
	if len(s.secretKey) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: JWT_SECRET not set", ErrConfiguration)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	if len(s.secretKey) == 0 {
		return nil, fmt.Errorf("%w: JWT_SECRET not set", ErrConfiguration)
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}

	return claims, nil
}
