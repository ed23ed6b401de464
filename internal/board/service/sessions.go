package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/idx"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

// DefaultSessionTTL bounds how long a login lives without re-authenticating.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionService issues and resolves login tokens. A token is an HS256 JWT
// whose jti points at a sessions row; the signature keeps the cookie opaque
// and tamper-proof, the row makes logout effective server-side.
type SessionService struct {
	Store  store.Store
	Secret []byte
	TTL    time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Issue creates a session row for the user and returns the signed token.
// Expired rows are swept opportunistically here, since logins are the only
// moment the table grows.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, error) {
	if err := s.Store.Sessions().DeleteExpiredSessions(ctx); err != nil {
		slogx.FromContext(ctx).Warn("session sweep failed", "err", err)
	}

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Resolve verifies the token and returns the user id it belongs to. Any
// failure mode (bad signature, expired, revoked, unknown session) is
// ErrUnauthenticated; callers get no detail to act on.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", ErrUnauthenticated
	}

	sess, err := s.Store.Sessions().GetSessionByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) {
		return "", ErrUnauthenticated
	}
	if sess.UserID != claims.Subject {
		return "", ErrUnauthenticated
	}
	return sess.UserID, nil
}

// Invalidate revokes the session behind the token. Tokens that no longer
// parse are already dead and invalidate to nil.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.Store.Sessions().RevokeSession(ctx, claims.ID)
}

func (s *SessionService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
