package employee

import (
	"database/sql"
	"time"
)

// DB行に対応（スキャン用）
type employeeRow struct {
	ID            uint64
	FirstName     string
	MiddleName    sql.NullString
	LastName      string
	DateOfBirth   string // DATE → "YYYY-MM-DD"
	PlaceOfBirth  string
	Age           int
	Sex           string
	Address       string
	JobTitle      string
	Department    string
	Status        string
	DateOfService string
	Salary        float64 // DECIMAL(10,2) → floatで受ける（レスポンスは数値で出す契約）
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Employee struct {
	ID            uint64
	FirstName     string
	MiddleName    *string
	LastName      string
	DateOfBirth   string
	PlaceOfBirth  string
	Age           int
	Sex           string
	Address       string
	JobTitle      string
	Department    string
	Status        string
	DateOfService string
	Salary        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// INSERT / 全置換(PUT) 用の属性セット
type employeeAttrs struct {
	FirstName     string
	MiddleName    *string
	LastName      string
	DateOfBirth   string
	PlaceOfBirth  string
	Age           int
	Sex           string
	Address       string
	JobTitle      string
	Department    string
	Status        string
	DateOfService string
	Salary        float64
}

func (r employeeRow) toModel() Employee {
	e := Employee{
		ID:            r.ID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		DateOfBirth:   r.DateOfBirth,
		PlaceOfBirth:  r.PlaceOfBirth,
		Age:           r.Age,
		Sex:           r.Sex,
		Address:       r.Address,
		JobTitle:      r.JobTitle,
		Department:    r.Department,
		Status:        r.Status,
		DateOfService: r.DateOfService,
		Salary:        r.Salary,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
	if r.MiddleName.Valid {
		m := r.MiddleName.String
		e.MiddleName = &m
	}
	return e
}

func (e Employee) toDTO() EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		FirstName:     e.FirstName,
		MiddleName:    e.MiddleName,
		LastName:      e.LastName,
		DateOfBirth:   e.DateOfBirth,
		PlaceOfBirth:  e.PlaceOfBirth,
		Age:           e.Age,
		Sex:           e.Sex,
		Address:       e.Address,
		JobTitle:      e.JobTitle,
		Department:    e.Department,
		Status:        e.Status,
		DateOfService: e.DateOfService,
		Salary:        e.Salary,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}
