// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/maplebear-saf/saf-server/models"
)

const (
	tokenIssuer   = "maple-bear-saf"
	tokenAudience = "saf-frontend"
	tokenTTL      = 8 * time.Hour

	maxFailedAttempts = 5
	lockoutWindow     = 5 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrTokenExpired       = errors.New("token expirado")
	ErrInvalidToken       = errors.New("token inválido")
)

// LockedError reports how long an account stays locked after too many
// failed login attempts.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("conta bloqueada por %d minutos devido a muitas tentativas falhadas",
		int(e.Remaining.Round(time.Minute).Minutes()))
}

// Claims is the JWT payload issued for staff sessions.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type attemptRecord struct {
	count int
	last  time.Time
}

// Service authenticates staff users against the staff table and issues
// signed session tokens.
//
// The failed-attempt counters live in process memory, so the lockout
// policy only holds for a single server instance.
type Service struct {
	db     *sql.DB
	secret []byte
	now    func() time.Time

	mu       sync.Mutex
	failures map[string]*attemptRecord
}

func NewService(db *sql.DB, secret string) *Service {
	return &Service{
		db:       db,
		secret:   []byte(secret),
		now:      time.Now,
		failures: make(map[string]*attemptRecord),
	}
}

// Authenticate validates a username/password pair.
// Returns ErrInvalidCredentials on unknown user or password mismatch and
// *LockedError while the account is locked out.
func (s *Service) Authenticate(username, password string) (models.StaffInfo, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if remaining, locked := s.lockedFor(username); locked {
		return models.StaffInfo{}, &LockedError{Remaining: remaining}
	}

	var info models.StaffInfo
	var hash, salt string
	err := s.db.QueryRow(`
		SELECT username, name, role, password_hash, password_salt
		FROM staff
		WHERE username = $1
	`, username).Scan(&info.Username, &info.Name, &info.Role, &hash, &salt)
	if err == sql.ErrNoRows {
		s.recordFailure(username)
		return models.StaffInfo{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.StaffInfo{}, fmt.Errorf("failed to query staff: %w", err)
	}

	if !VerifyPassword(password, hash, salt) {
		s.recordFailure(username)
		return models.StaffInfo{}, ErrInvalidCredentials
	}

	s.clearFailures(username)
	return info, nil
}

// IssueToken signs a short-lived session token for an authenticated user.
func (s *Service) IssueToken(info models.StaffInfo) (string, error) {
	now := s.now()
	claims := Claims{
		Name: info.Name,
		Role: info.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   info.Username,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token. Tokens whose subject
// no longer exists in the staff table are rejected.
func (s *Service) VerifyToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM staff WHERE username = $1`, claims.Subject).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	if count == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) lockedFor(username string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.failures[username]
	if !ok || rec.count < maxFailedAttempts {
		return 0, false
	}

	elapsed := s.now().Sub(rec.last)
	if elapsed < lockoutWindow {
		return lockoutWindow - elapsed, true
	}

	// Lockout window has passed; start fresh.
	delete(s.failures, username)
	return 0, false
}

func (s *Service) recordFailure(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.failures[username]
	if !ok {
		rec = &attemptRecord{}
		s.failures[username] = rec
	}
	rec.count++
	rec.last = s.now()
}

func (s *Service) clearFailures(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, username)
}
