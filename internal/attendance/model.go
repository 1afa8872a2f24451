package attendance

import (
	"database/sql"
	"strings"
	"time"
)

// DB行に対応（スキャン用）。時刻4列は "HH:MM:SS" の文字列で持つ。
type attendanceRow struct {
	ID         uint64
	EmployeeID uint64
	TimeInAM   string
	TimeOutAM  string
	TimeInPM   string
	TimeOutPM  string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Attendance struct {
	ID         uint64
	EmployeeID uint64
	TimeInAM   string
	TimeOutAM  string
	TimeInPM   string
	TimeOutPM  string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// 従業員名の組み立て用（Create応答の employee_name）
type employeeName struct {
	FirstName  string
	MiddleName sql.NullString
	LastName   string
}

func (n employeeName) full() string {
	middle := ""
	if n.MiddleName.Valid && n.MiddleName.String != "" {
		middle = n.MiddleName.String + " "
	}
	return strings.TrimSpace(n.FirstName + " " + middle + n.LastName)
}

func (r attendanceRow) toModel() Attendance {
	return Attendance{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		TimeInAM:   r.TimeInAM,
		TimeOutAM:  r.TimeOutAM,
		TimeInPM:   r.TimeInPM,
		TimeOutPM:  r.TimeOutPM,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

func (a Attendance) toDTO() AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		TimeInAM:   a.TimeInAM,
		TimeOutAM:  a.TimeOutAM,
		TimeInPM:   a.TimeInPM,
		TimeOutPM:  a.TimeOutPM,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}
