package attendance

import (
	"context"
	"database/sql"

	"HRIS-backend/internal/platform/apierr"
)

const msgNotFound = "Attendance record not found."

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

// GET /attendance
func (s *Service) List(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// GET /attendance/employee/:employee_id[?date=YYYY-MM-DD]
func (s *Service) ListByEmployee(ctx context.Context, employeeID uint64, date *string) ([]AttendanceResponse, error) {
	rows, err := s.store.ListByEmployee(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// GET /attendance/:id
func (s *Service) Get(ctx context.Context, id uint64) (AttendanceResponse, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if row == nil {
		return AttendanceResponse{}, apierr.ErrNotFound(msgNotFound)
	}
	return row.toDTO(), nil
}

// POST /attendance
// employee_id の実在を検査し、4つの時刻を24時間表記へ正規化してから保存する。
func (s *Service) Create(ctx context.Context, req CreateAttendanceRequest) (CreatedResponse, error) {
	exists, err := s.store.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return CreatedResponse{}, err
	}
	if !exists {
		return CreatedResponse{}, apierr.ErrValidation(map[string][]string{
			"employee_id": {"The selected employee_id is invalid."},
		})
	}

	inAM, err := to24Hour(req.TimeInAM)
	if err != nil {
		return CreatedResponse{}, apierr.ErrInvalid("time_in_AM: " + err.Error())
	}
	outAM, err := to24Hour(req.TimeOutAM)
	if err != nil {
		return CreatedResponse{}, apierr.ErrInvalid("time_out_AM: " + err.Error())
	}
	inPM, err := to24Hour(req.TimeInPM)
	if err != nil {
		return CreatedResponse{}, apierr.ErrInvalid("time_in_PM: " + err.Error())
	}
	outPM, err := to24Hour(req.TimeOutPM)
	if err != nil {
		return CreatedResponse{}, apierr.ErrInvalid("time_out_PM: " + err.Error())
	}

	id, err := s.store.Insert(ctx, req.EmployeeID, inAM, outAM, inPM, outPM, req.Status)
	if err != nil {
		return CreatedResponse{}, err
	}
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return CreatedResponse{}, err
	}
	if row == nil {
		return CreatedResponse{}, apierr.ErrInternal("inserted but not found")
	}

	name, err := s.store.EmployeeName(ctx, req.EmployeeID)
	if err != nil {
		return CreatedResponse{}, err
	}
	fullName := ""
	if name != nil {
		fullName = name.full()
	}

	return CreatedResponse{
		Attendance:   row.toDTO(),
		EmployeeName: fullName,
		Date:         row.CreatedAt.Format("2006-01-02"),
	}, nil
}

// PUT /attendance/:id
func (s *Service) Update(ctx context.Context, id uint64, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if existing == nil {
		return AttendanceResponse{}, apierr.ErrNotFound(msgNotFound)
	}

	if req.EmployeeID != nil {
		exists, err := s.store.EmployeeExists(ctx, *req.EmployeeID)
		if err != nil {
			return AttendanceResponse{}, err
		}
		if !exists {
			return AttendanceResponse{}, apierr.ErrValidation(map[string][]string{
				"employee_id": {"The selected employee_id is invalid."},
			})
		}
	}

	sets, args, err := changes(req)
	if err != nil {
		return AttendanceResponse{}, apierr.ErrInvalid(err.Error())
	}
	if len(sets) == 0 {
		return existing.toDTO(), nil
	}
	if err := s.store.UpdateFields(ctx, id, sets, args); err != nil {
		return AttendanceResponse{}, err
	}

	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if row == nil {
		return AttendanceResponse{}, apierr.ErrInternal("updated but not found")
	}
	return row.toDTO(), nil
}

// DELETE /attendance/:id
func (s *Service) Delete(ctx context.Context, id uint64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierr.ErrNotFound(msgNotFound)
	}
	return nil
}

// changes: 指定フィールドをSET句へ。時刻はここで正規化する。
func changes(req UpdateAttendanceRequest) ([]string, []any, error) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if req.EmployeeID != nil {
		set("employee_id", *req.EmployeeID)
	}
	for _, f := range []struct {
		col string
		val *string
	}{
		{"time_in_am", req.TimeInAM},
		{"time_out_am", req.TimeOutAM},
		{"time_in_pm", req.TimeInPM},
		{"time_out_pm", req.TimeOutPM},
	} {
		if f.val == nil {
			continue
		}
		normalized, err := to24Hour(*f.val)
		if err != nil {
			return nil, nil, err
		}
		set(f.col, normalized)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	return sets, args, nil
}

func toDTOs(rows []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDTO())
	}
	return out
}
