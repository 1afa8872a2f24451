package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ログインに必要な最小限の資格情報
type Credential struct {
	ID           uint64
	Email        string
	PasswordHash string
	UserType     string
}

// GET /user 用のプロフィール（password は含めない）
type Profile struct {
	ID          uint64  `json:"id"`
	FirstName   string  `json:"first_name"`
	MiddleName  *string `json:"middle_name"`
	LastName    string  `json:"last_name"`
	UserName    string  `json:"user_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	UserType    string  `json:"user_type"`
}

type SessionStore interface {
	GetCredentialByEmail(ctx context.Context, email string) (*Credential, error)
	GetProfileByID(ctx context.Context, id uint64) (*Profile, error)
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) SessionStore { return &Store{db: db} }

func (s *Store) GetCredentialByEmail(ctx context.Context, email string) (*Credential, error) {
	const q = `
SELECT id, email, password, user_type
FROM users
WHERE email = ?
LIMIT 1`
	var c Credential
	err := s.db.QueryRowContext(ctx, q, email).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.UserType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetProfileByID(ctx context.Context, id uint64) (*Profile, error) {
	const q = `
SELECT id, first_name, middle_name, last_name, user_name, email, phone_number, user_type
FROM users
WHERE id = ?
LIMIT 1`
	var p Profile
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID,
		&p.FirstName,
		&p.MiddleName,
		&p.LastName,
		&p.UserName,
		&p.Email,
		&p.PhoneNumber,
		&p.UserType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	// exp を持たせておけば掃除バッチで期限切れ行を消せる
	const q = `
INSERT INTO revoked_tokens (jti, expires_at, revoked_at)
VALUES (?, ?, NOW(6))
ON DUPLICATE KEY UPDATE revoked_at = revoked_at`
	_, err := s.db.ExecContext(ctx, q, jti, expiresAt.UTC())
	return err
}

func (s *Store) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM revoked_tokens WHERE jti = ? LIMIT 1`, jti).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
