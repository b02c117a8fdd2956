// Package services holds the business logic. Each service is a small struct
// built over narrow store interfaces so the persistence layer stays
// swappable in tests.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"
	"github.com/Aayush03107/Ai-Calorie-Tracker/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authentication failures. Callers must collapse all of these into one
// uniform unauthorized response; the distinction exists for logs only.
var (
	ErrUnauthenticated  = errors.New("no credential presented")
	ErrRevoked          = errors.New("token revoked")
	ErrInvalidOrExpired = errors.New("invalid or expired token")
	ErrUnknownSubject   = errors.New("token subject not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TokenRevoker is the revocation list: tokens are inserted on logout and
// expire on their own after the retention window.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// UserStore resolves identities. A nil user with a nil error means the
// user does not exist.
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	revoker TokenRevoker
	users   UserStore
	secret  []byte
	log     *zap.Logger
}

func NewAuthService(revoker TokenRevoker, users UserStore, secret []byte, log *zap.Logger) *AuthService {
	return &AuthService{revoker: revoker, users: users, secret: secret, log: log}
}

// Authenticate decides whether a request bearing the given token may
// proceed, and as whom. It is read-only: revocation and user lookups leave
// no trace. The revocation check runs before signature verification so a
// revoked token never passes, however well-formed.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	revoked, err := s.revoker.IsRevoked(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("checking revocation list: %w", err)
	}
	if revoked {
		return nil, ErrRevoked
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidOrExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidOrExpired
	}
	id, ok := subjectID(claims)
	if !ok {
		return nil, ErrInvalidOrExpired
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrUnknownSubject
	}
	return user, nil
}

// Login verifies the password and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.secret, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return token, user, nil
}

// Logout puts the token on the revocation list for the session TTL.
// Revoking an already revoked token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthenticated
	}
	if err := s.revoker.Revoke(ctx, token, utils.SessionTTL); err != nil {
		return err
	}
	s.log.Info("session revoked")
	return nil
}

// subjectID extracts the user ID from a verified claim set. The password
// login signs "userId"; the federated login signs "id". Both arrive as JSON
// numbers, but a string of digits is tolerated too.
func subjectID(claims jwt.MapClaims) (uint, bool) {
	for _, key := range []string{"userId", "id"} {
		v, ok := claims[key]
		if !ok {
			continue
		}
		switch id := v.(type) {
		case float64:
			if id > 0 {
				return uint(id), true
			}
		case string:
			if n, err := strconv.ParseUint(id, 10, 64); err == nil && n > 0 {
				return uint(n), true
			}
		}
	}
	return 0, false
}
