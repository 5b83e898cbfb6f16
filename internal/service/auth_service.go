package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZTormDev/pos/internal/config"
	"github.com/ZTormDev/pos/internal/dto"
)

// ErrInvalidCredentials is returned for both unknown users and bad passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates actors and issues the tokens the core uses for
// attribution (cashier fields). Identity is otherwise opaque to the ledger.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type demoUser struct {
	username     string
	name         string
	role         string
	passwordHash []byte
}

type authService struct {
	users []demoUser
	cfg   *config.Config
}

// NewAuthService provisions the two demo accounts in memory. Passwords come
// from config and are hashed at startup; nothing is persisted.
func NewAuthService(cfg *config.Config) (AuthService, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	cashierHash, err := bcrypt.GenerateFromPassword([]byte(cfg.CashierPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		cfg: cfg,
		users: []demoUser{
			{username: "admin", name: "Administrator", role: "admin", passwordHash: adminHash},
			{username: "cashier", name: "Juan Perez", role: "cashier", passwordHash: cashierHash},
		},
	}, nil
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var found *demoUser
	for i := range s.users {
		if s.users[i].username == req.Username {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"username": found.username,
		"name":     found.name,
		"role":     found.role,
		"exp":      time.Now().Add(expiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			Username: found.username,
			Name:     found.name,
			Role:     found.role,
		},
	}, nil
}
