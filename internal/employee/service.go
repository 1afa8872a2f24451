package employee

import (
	"context"
	"database/sql"

	"HRIS-backend/internal/platform/apierr"
	platformdb "HRIS-backend/internal/platform/db"
	"HRIS-backend/internal/platform/schema"
)

const (
	msgNotFound     = "Employee not found."
	msgNoneMatching = "No employees found matching the criteria."
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

// GET /employees
func (s *Service) List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, error) {
	rows, err := s.store.List(ctx, Filter{
		Department: q.Department,
		Status:     q.Status,
		JobTitle:   q.JobTitle,
		Sex:        q.Sex,
		Age:        q.Age,
		AgeMin:     q.AgeMin,
		AgeMax:     q.AgeMax,
		Search:     q.Search,
	})
	if err != nil {
		return nil, err
	}
	// 空集合は「見つからない」として扱う（この API の既定の振る舞い）
	if len(rows) == 0 {
		return nil, apierr.ErrNotFound(msgNoneMatching)
	}
	return toDTOs(rows), nil
}

// GET /employees/:id
func (s *Service) Get(ctx context.Context, id uint64) (EmployeeResponse, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if row == nil {
		return EmployeeResponse{}, apierr.ErrNotFound(msgNotFound)
	}
	return s.checked(row.toDTO())
}

// POST /employees
func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	id, err := s.store.Insert(ctx, req.attrs())
	if err != nil {
		return EmployeeResponse{}, err
	}
	// 生成列（id, timestamps）込みで返すため取り直す
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if row == nil {
		return EmployeeResponse{}, apierr.ErrInternal("inserted but not found")
	}
	return s.checked(row.toDTO())
}

// PUT /employees/:id
func (s *Service) Replace(ctx context.Context, id uint64, req CreateEmployeeRequest) (EmployeeResponse, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if existing == nil {
		return EmployeeResponse{}, apierr.ErrNotFound(msgNotFound)
	}
	if _, err := s.store.Replace(ctx, id, req.attrs()); err != nil {
		return EmployeeResponse{}, err
	}
	return s.reload(ctx, id)
}

// PATCH /employees/:id
// 同じペイロードを二度適用しても結果は同じ（SET句は値の上書きのみ）。
func (s *Service) Patch(ctx context.Context, id uint64, req PatchEmployeeRequest) (EmployeeResponse, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if existing == nil {
		return EmployeeResponse{}, apierr.ErrNotFound(msgNotFound)
	}

	sets, args := req.changes()
	if len(sets) == 0 {
		return s.checked(existing.toDTO())
	}
	if err := s.store.UpdateFields(ctx, id, sets, args); err != nil {
		return EmployeeResponse{}, err
	}
	return s.reload(ctx, id)
}

// DELETE /employees/:id
// 出席記録が参照している従業員は削除不可（カスケードも黙殺もしない）。
func (s *Service) Delete(ctx context.Context, id uint64) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apierr.ErrNotFound(msgNotFound)
	}

	n, err := s.store.CountAttendance(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierr.ErrConflict("Cannot delete employee with attendance records.")
	}

	affected, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.ErrNotFound(msgNotFound)
	}
	return nil
}

// GET /employees/multiple?ids=1,2,3
func (s *Service) Multiple(ctx context.Context, ids []uint64) ([]EmployeeResponse, error) {
	rows, err := s.store.GetByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.ErrNotFound(msgNotFound)
	}
	return toDTOs(rows), nil
}

// PUT/PATCH /employees/bulk-update
// 全idの存在を確認してから1文のUPDATE。トランザクション内なので全件か0件か。
// withRows=true（PATCH）なら更新後の行も返す。
func (s *Service) BulkUpdate(ctx context.Context, req BulkUpdateRequest, withRows bool) (int64, []EmployeeResponse, error) {
	sets, args := req.Data.changes()
	if len(sets) == 0 {
		return 0, nil, apierr.ErrValidation(map[string][]string{
			"data": {"The data field is required."},
		})
	}

	var (
		updated int64
		out     []EmployeeResponse
	)
	err := platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		if err := s.requireAllExist(ctx, tx, req.IDs); err != nil {
			return err
		}
		n, err := s.store.UpdateByIDs(ctx, tx, req.IDs, sets, args)
		if err != nil {
			return err
		}
		updated = n
		if withRows {
			rows, err := s.store.GetByIDs(ctx, tx, req.IDs)
			if err != nil {
				return err
			}
			out = toDTOs(rows)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return updated, out, nil
}

// DELETE /employees/bulk-delete
func (s *Service) BulkDelete(ctx context.Context, req BulkDeleteRequest) (int64, error) {
	var deleted int64
	err := platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		if err := s.requireAllExist(ctx, tx, req.IDs); err != nil {
			return err
		}
		n, err := s.store.DeleteByIDs(ctx, tx, req.IDs)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GET /employees/test-validator
// リクエストスキーマがロードできるかの診断用。既知の正常ペイロードを流す。
func (s *Service) TestValidator() error {
	middle := (*string)(nil)
	sample := EmployeeResponse{
		FirstName:     "Test",
		MiddleName:    middle,
		LastName:      "User",
		DateOfBirth:   "2000-01-01",
		PlaceOfBirth:  "Test City",
		Age:           25,
		Sex:           "Male",
		Address:       "123 Test St",
		JobTitle:      "Developer",
		Department:    "IT",
		Status:        "Active",
		DateOfService: "2020-01-01",
		Salary:        50000.0,
	}
	// request スキーマには id/timestamps が無いので map に落として検査する
	payload := map[string]any{
		"first_name":      sample.FirstName,
		"middle_name":     sample.MiddleName,
		"last_name":       sample.LastName,
		"date_of_birth":   sample.DateOfBirth,
		"place_of_birth":  sample.PlaceOfBirth,
		"age":             sample.Age,
		"sex":             sample.Sex,
		"address":         sample.Address,
		"job_title":       sample.JobTitle,
		"department":      sample.Department,
		"status":          sample.Status,
		"date_of_service": sample.DateOfService,
		"salary":          sample.Salary,
	}
	return schema.ValidateEmployeeRequest(payload)
}

// ===== internals =====

func (s *Service) requireAllExist(ctx context.Context, tx platformdb.DBTX, ids []uint64) error {
	n, err := s.store.CountByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(uniq(ids))) {
		return apierr.ErrValidation(map[string][]string{
			"ids": {"One or more of the selected ids do not exist."},
		})
	}
	return nil
}

// checked: 単一レコードは出口でスキーマ検査。失敗は契約ドリフトなので500。
func (s *Service) checked(dto EmployeeResponse) (EmployeeResponse, error) {
	if err := schema.ValidateEmployeeResponse(dto); err != nil {
		return EmployeeResponse{}, apierr.ErrInternal("Response validation failed: " + err.Error())
	}
	return dto, nil
}

func (s *Service) reload(ctx context.Context, id uint64) (EmployeeResponse, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if row == nil {
		return EmployeeResponse{}, apierr.ErrInternal("updated but not found")
	}
	return s.checked(row.toDTO())
}

func toDTOs(rows []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDTO())
	}
	return out
}

func uniq(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
