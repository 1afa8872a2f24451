package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthFailed   = errors.New("authentication failed")
	ErrInvalidToken = errors.New("invalid token")
)

type Service struct {
	store  SessionStore
	secret []byte
	ttl    time.Duration
}

func NewService(db *sql.DB, secret []byte, ttlHours int) *Service {
	return &Service{
		store:  NewStore(db),
		secret: secret,
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// Login: email+password を照合して HS256 のトークンを発行する。
// jti は ULID。logout で失効させるときのキーになる。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	cred, err := s.store.GetCredentialByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrAuthFailed
	}

	now := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	jti := ulid.MustNew(ulid.Timestamp(now), entropy).String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(cred.ID, 10),
		"role": cred.UserType,
		"jti":  jti,
		"exp":  now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Logout: トークンの jti を失効表に入れる。以後 RequireAuth で弾かれる。
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return ErrInvalidToken
	}
	return s.store.RevokeToken(ctx, jti, expiresAt)
}

// CurrentUser: トークンの sub からプロフィールを引く。
func (s *Service) CurrentUser(ctx context.Context, userID uint64) (*Profile, error) {
	return s.store.GetProfileByID(ctx, userID)
}

func (s *Service) isRevoked(ctx context.Context, jti string) (bool, error) {
	return s.store.IsTokenRevoked(ctx, jti)
}
