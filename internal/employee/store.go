package employee

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"

	platformdb "HRIS-backend/internal/platform/db"
)

const selectCols = `
SELECT id, first_name, middle_name, last_name,
       DATE_FORMAT(date_of_birth, '%Y-%m-%d') AS date_of_birth,
       place_of_birth, age, sex, address, job_title, department, status,
       DATE_FORMAT(date_of_service, '%Y-%m-%d') AS date_of_service,
       salary, created_at, updated_at
FROM employees`

// search が対象にする列の固定リスト（動的に導出しない）。
// 数値・日付列も CAST で文字列化してから部分一致させる。
var searchColumns = []string{
	"first_name",
	"last_name",
	"department",
	"job_title",
	"address",
	"place_of_birth",
	"status",
	"sex",
	"age",
	"date_of_service",
	"date_of_birth",
	"middle_name",
}

// List用フィルタ。nil は未指定。
type Filter struct {
	Department *string // 部分一致
	Status     *string
	JobTitle   *string
	Sex        *string
	Age        *int
	AgeMin     *int
	AgeMax     *int
	Search     *string // 全対象列のOR部分一致
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// buildListQuery: フィルタ群をAND結合のWHEREへ落とす。search だけ内部OR。
// 並び順は id ASC 固定（ストアの偶発的な順序に依存しない）。
func buildListQuery(f Filter) (string, []any) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)
	buf.WriteString(selectCols)

	if f.Age != nil {
		wheres = append(wheres, "age = ?")
		args = append(args, *f.Age)
	}
	if f.Department != nil {
		wheres = append(wheres, "department LIKE ?")
		args = append(args, "%"+*f.Department+"%")
	}
	if f.Status != nil {
		wheres = append(wheres, "status = ?")
		args = append(args, *f.Status)
	}
	if f.JobTitle != nil {
		wheres = append(wheres, "job_title = ?")
		args = append(args, *f.JobTitle)
	}
	if f.AgeMin != nil {
		wheres = append(wheres, "age >= ?")
		args = append(args, *f.AgeMin)
	}
	if f.AgeMax != nil {
		wheres = append(wheres, "age <= ?")
		args = append(args, *f.AgeMax)
	}
	if f.Sex != nil {
		wheres = append(wheres, "sex = ?")
		args = append(args, *f.Sex)
	}
	if f.Search != nil && *f.Search != "" {
		likes := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			likes = append(likes, "LOWER(CAST("+col+" AS CHAR)) LIKE ?")
			args = append(args, "%"+strings.ToLower(*f.Search)+"%")
		}
		wheres = append(wheres, "("+strings.Join(likes, " OR ")+")")
	}

	if len(wheres) > 0 {
		buf.WriteString("\nWHERE " + strings.Join(wheres, " AND "))
	}
	buf.WriteString("\nORDER BY id ASC")
	return buf.String(), args
}

func (s *Store) List(ctx context.Context, f Filter) ([]Employee, error) {
	q, args := buildListQuery(f)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, selectCols+"\nWHERE id = ?\nLIMIT 1", id)
	var r employeeRow
	if err := scanOne(row, &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

func (s *Store) GetByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64) ([]Employee, error) {
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

func (s *Store) Insert(ctx context.Context, a employeeAttrs) (uint64, error) {
	const q = `
INSERT INTO employees
    (first_name, middle_name, last_name, date_of_birth, place_of_birth,
     age, sex, address, job_title, department, status, date_of_service, salary,
     created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(6), NOW(6))`
	res, err := s.db.ExecContext(ctx, q,
		a.FirstName, nullable(a.MiddleName), a.LastName, a.DateOfBirth, a.PlaceOfBirth,
		a.Age, a.Sex, a.Address, a.JobTitle, a.Department, a.Status, a.DateOfService, a.Salary,
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

// Replace: PUT による全置換
func (s *Store) Replace(ctx context.Context, id uint64, a employeeAttrs) (int64, error) {
	const q = `
UPDATE employees
SET first_name = ?, middle_name = ?, last_name = ?, date_of_birth = ?,
    place_of_birth = ?, age = ?, sex = ?, address = ?, job_title = ?,
    department = ?, status = ?, date_of_service = ?, salary = ?, updated_at = NOW(6)
WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q,
		a.FirstName, nullable(a.MiddleName), a.LastName, a.DateOfBirth, a.PlaceOfBirth,
		a.Age, a.Sex, a.Address, a.JobTitle, a.Department, a.Status, a.DateOfService, a.Salary,
		id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateFields: PATCH。sets/args は dto 側の changes() が作る。
func (s *Store) UpdateFields(ctx context.Context, id uint64, sets []string, args []any) error {
	if len(sets) == 0 {
		return nil
	}
	q := "UPDATE employees SET " + strings.Join(sets, ", ") + ", updated_at = NOW(6) WHERE id = ?"
	args = append(args, id)
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *Store) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountAttendance: 削除可否の判定用（出席記録が残る従業員は消させない）
func (s *Store) CountAttendance(ctx context.Context, employeeID uint64) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE employee_id = ?`, employeeID).Scan(&n)
	return n, err
}

func (s *Store) CountByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64) (int64, error) {
	var n int64
	q := "SELECT COUNT(*) FROM employees WHERE id IN (" + placeholders(len(ids)) + ")"
	err := dbx.QueryRowContext(ctx, q, toArgs(ids)...).Scan(&n)
	return n, err
}

func (s *Store) UpdateByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64, sets []string, args []any) (int64, error) {
	q := "UPDATE employees SET " + strings.Join(sets, ", ") + ", updated_at = NOW(6)" +
		" WHERE id IN (" + placeholders(len(ids)) + ")"
	args = append(args, toArgs(ids)...)
	res, err := dbx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeleteByIDs(ctx context.Context, dbx platformdb.DBTX, ids []uint64) (int64, error) {
	q := "DELETE FROM employees WHERE id IN (" + placeholders(len(ids)) + ")"
	res, err := dbx.ExecContext(ctx, q, toArgs(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ===== helpers =====

func scanAll(rows *sql.Rows) ([]Employee, error) {
	var out []Employee
	for rows.Next() {
		var r employeeRow
		if err := rows.Scan(
			&r.ID, &r.FirstName, &r.MiddleName, &r.LastName, &r.DateOfBirth,
			&r.PlaceOfBirth, &r.Age, &r.Sex, &r.Address, &r.JobTitle,
			&r.Department, &r.Status, &r.DateOfService, &r.Salary,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func scanOne(row *sql.Row, r *employeeRow) error {
	return row.Scan(
		&r.ID, &r.FirstName, &r.MiddleName, &r.LastName, &r.DateOfBirth,
		&r.PlaceOfBirth, &r.Age, &r.Sex, &r.Address, &r.JobTitle,
		&r.Department, &r.Status, &r.DateOfService, &r.Salary,
		&r.CreatedAt, &r.UpdatedAt,
	)
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
