package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/config"
	"github.com/biteflow/restaurant-service/internal/db/repository"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication and authorization
type AuthService struct {
	users     UserRepository
	jwtConfig config.JWT
	admin     config.Admin
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserRepository, jwtConfig config.JWT, admin config.Admin) *AuthService {
	return &AuthService{
		users:     users,
		jwtConfig: jwtConfig,
		admin:     admin,
	}
}

// Claims represents JWT claims. User sessions carry ID, admin sessions carry Email.
type Claims struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims grant admin access
func (c *Claims) IsAdmin(adminEmail string) bool {
	return (c.Email != "" && c.Email == adminEmail) || c.Role == string(models.RoleAdmin)
}

var registerMessages = map[string]string{
	"Email.email":  "Please enter a valid email",
	"Password.min": "Password must be at least 6 characters",
}

// Register creates a user account. No session is issued.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if err := checkRequest(req, registerMessages, "Please fill all the fields"); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal("look up user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal("hash password", err)
	}

	createdUser, err := s.users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, internal("create user", err)
	}

	return createdUser, nil
}

// Login authenticates a user and returns a signed session token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := checkRequest(req, nil, "Please fill all the fields"); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperr.NotFound("User does not exist")
		}
		return "", nil, internal("look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, apperr.InvalidCredentials("Invalid credentials")
	}

	token, err := s.generateToken(Claims{ID: user.ID.String(), Role: string(user.Role())})
	if err != nil {
		return "", nil, internal("generate token", err)
	}

	return token, user, nil
}

// AdminLogin checks the configured admin credentials and returns an admin session token
func (s *AuthService) AdminLogin(req models.LoginRequest) (string, error) {
	if err := checkRequest(req, nil, "Please fill all the fields"); err != nil {
		return "", err
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.admin.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.admin.Password)) == 1
	if !emailOK || !passwordOK {
		return "", apperr.InvalidCredentials("Invalid credentials")
	}

	token, err := s.generateToken(Claims{Email: s.admin.Email, Role: string(models.RoleAdmin)})
	if err != nil {
		return "", internal("generate token", err)
	}

	return token, nil
}

// GetProfile returns the stored user behind a session
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, internal("get user", err)
	}
	return user, nil
}

// AdminEmail is the email admin sessions are issued for
func (s *AuthService) AdminEmail() string {
	return s.admin.Email
}

// TokenTTL is how long issued tokens, and their cookies, stay valid
func (s *AuthService) TokenTTL() time.Duration {
	return time.Duration(s.jwtConfig.ExpiresIn) * time.Hour
}

// generateToken signs claims with HS256 and the configured lifetime
func (s *AuthService) generateToken(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL())),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
