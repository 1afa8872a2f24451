package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	platformdb "HRIS-backend/internal/platform/db"
)

const selectCols = `
SELECT id, first_name, middle_name, last_name, user_name, email, password,
       phone_number, profile_photo, user_type, created_at, updated_at
FROM users`

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, selectCols+"\nORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*User, error) {
	row := s.db.QueryRowContext(ctx, selectCols+"\nWHERE id = ?\nLIMIT 1", id)
	var r userRow
	err := scanRow(row, &r)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

func (s *Store) GetByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := selectCols + "\nWHERE id IN (" + placeholders(len(ids)) + ")\nORDER BY id ASC"
	rows, err := dbx.QueryContext(ctx, q, toArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// EmailTaken: email のユニーク制約違反を422で返すための事前チェック
func (s *Store) EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE email = ? AND id <> ? LIMIT 1`, email, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Insert(ctx context.Context, u User) (uint64, error) {
	const q = `
INSERT INTO users
    (first_name, middle_name, last_name, user_name, email, password,
     phone_number, profile_photo, user_type, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(6), NOW(6))`
	res, err := s.db.ExecContext(ctx, q,
		u.FirstName, nullable(u.MiddleName), u.LastName, u.UserName, u.Email, u.PasswordHash,
		u.PhoneNumber, nullable(u.ProfilePhoto), u.UserType,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) UpdateFields(ctx context.Context, id uint64, sets []string, args []any) error {
	if len(sets) == 0 {
		return nil
	}
	q := "UPDATE users SET " + strings.Join(sets, ", ") + ", updated_at = NOW(6) WHERE id = ?"
	args = append(args, id)
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *Store) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) CountByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64) (int64, error) {
	var n int64
	q := "SELECT COUNT(*) FROM users WHERE id IN (" + placeholders(len(ids)) + ")"
	err := dbx.QueryRowContext(ctx, q, toArgs(ids)...).Scan(&n)
	return n, err
}

func (s *Store) UpdateByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64, sets []string, args []any) (int64, error) {
	q := "UPDATE users SET " + strings.Join(sets, ", ") + ", updated_at = NOW(6)" +
		" WHERE id IN (" + placeholders(len(ids)) + ")"
	args = append(args, toArgs(ids)...)
	res, err := dbx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ===== helpers =====

func scanRow(row *sql.Row, r *userRow) error {
	return row.Scan(
		&r.ID, &r.FirstName, &r.MiddleName, &r.LastName, &r.UserName, &r.Email,
		&r.PasswordHash, &r.PhoneNumber, &r.ProfilePhoto, &r.UserType,
		&r.CreatedAt, &r.UpdatedAt,
	)
}

func scanAll(rows *sql.Rows) ([]User, error) {
	var out []User
	for rows.Next() {
		var r userRow
		if err := rows.Scan(
			&r.ID, &r.FirstName, &r.MiddleName, &r.LastName, &r.UserName, &r.Email,
			&r.PasswordHash, &r.PhoneNumber, &r.ProfilePhoto, &r.UserType,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(ids []uint64) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
