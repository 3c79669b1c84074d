// Package auth verifies learner credentials and issues cookie-borne session
// tokens. The assignment engine only ever sees the resolved learner ID.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/wordday/internal/database"
)

// CookieName is the session cookie set on successful login
const CookieName = "vocab-session"

// ErrInvalidCredentials is returned when the username or password is wrong
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session identifies an authenticated learner
type Session struct {
	SessionID string
	UserID    int64
}

type sessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Service verifies passwords and signs/parses session tokens
type Service struct {
	users  *database.UserRepository
	secret []byte
	ttl    time.Duration
}

// New creates an auth service. secret signs session tokens and must not be
// empty; ttl bounds session lifetime.
func New(users *database.UserRepository, secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("session secret is not set")
	}
	return &Service{users: users, secret: []byte(secret), ttl: ttl}, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a username/password pair and returns the user ID on
// success. Unknown users and wrong passwords are indistinguishable to the
// caller.
func (s *Service) VerifyPassword(ctx context.Context, username, password string) (int64, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// CreateToken issues a signed session token for the given user
func (s *Service) CreateToken(userID int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns the session it carries
func (s *Service) ParseToken(tokenString string) (*Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid session subject: %w", err)
	}
	return &Session{SessionID: claims.SessionID, UserID: userID}, nil
}

// TTL returns the configured session lifetime
func (s *Service) TTL() time.Duration {
	return s.ttl
}
