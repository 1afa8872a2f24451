package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

const selectCols = `
SELECT id, employee_id,
       TIME_FORMAT(time_in_am, '%H:%i:%s'),
       TIME_FORMAT(time_out_am, '%H:%i:%s'),
       TIME_FORMAT(time_in_pm, '%H:%i:%s'),
       TIME_FORMAT(time_out_pm, '%H:%i:%s'),
       status, created_at, updated_at
FROM attendance`

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) List(ctx context.Context) ([]Attendance, error) {
	rows, err := s.db.QueryContext(ctx, selectCols+"\nORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// ListByEmployee: date 指定時は作成日で絞る
func (s *Store) ListByEmployee(ctx context.Context, employeeID uint64, date *string) ([]Attendance, error) {
	q := selectCols + "\nWHERE employee_id = ?"
	args := []any{employeeID}
	if date != nil && *date != "" {
		q += " AND DATE(created_at) = ?"
		args = append(args, *date)
	}
	q += "\nORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*Attendance, error) {
	row := s.db.QueryRowContext(ctx, selectCols+"\nWHERE id = ?\nLIMIT 1", id)
	var r attendanceRow
	err := row.Scan(&r.ID, &r.EmployeeID, &r.TimeInAM, &r.TimeOutAM, &r.TimeInPM, &r.TimeOutPM,
		&r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// Insert: 時刻は正規化済みの "HH:MM:SS" を受け取る
func (s *Store) Insert(ctx context.Context, employeeID uint64, inAM, outAM, inPM, outPM, status string) (uint64, error) {
	const q = `
INSERT INTO attendance
    (employee_id, time_in_am, time_out_am, time_in_pm, time_out_pm, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, NOW(6), NOW(6))`
	res, err := s.db.ExecContext(ctx, q, employeeID, inAM, outAM, inPM, outPM, status)
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
	q := "UPDATE attendance SET " + strings.Join(sets, ", ") + ", updated_at = NOW(6) WHERE id = ?"
	args = append(args, id)
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *Store) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EmployeeExists: 参照整合性は作成・更新時に検査する
func (s *Store) EmployeeExists(ctx context.Context, employeeID uint64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM employees WHERE id = ? LIMIT 1`, employeeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) EmployeeName(ctx context.Context, employeeID uint64) (*employeeName, error) {
	var n employeeName
	err := s.db.QueryRowContext(ctx,
		`SELECT first_name, middle_name, last_name FROM employees WHERE id = ? LIMIT 1`,
		employeeID).Scan(&n.FirstName, &n.MiddleName, &n.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func scanAll(rows *sql.Rows) ([]Attendance, error) {
	var out []Attendance
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.TimeInAM, &r.TimeOutAM, &r.TimeInPM, &r.TimeOutPM,
			&r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}
