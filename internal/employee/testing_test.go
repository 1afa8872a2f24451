package employee

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var employeeCols = []string{
	"id", "first_name", "middle_name", "last_name", "date_of_birth",
	"place_of_birth", "age", "sex", "address", "job_title",
	"department", "status", "date_of_service", "salary", "created_at", "updated_at",
}

type fixture struct {
	id        uint64
	firstName string
	jobTitle  string
}

func employeeFixture(id uint64, firstName, jobTitle string) fixture {
	return fixture{id: id, firstName: firstName, jobTitle: jobTitle}
}

func employeeRows(fs ...fixture) *sqlmock.Rows {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(employeeCols)
	for _, f := range fs {
		rows.AddRow(
			f.id, f.firstName, nil, "Smith", "1990-05-01",
			"Springfield", 35, "Male", "1 Main St", f.jobTitle,
			"IT", "Active", "2015-03-01", 50000.0, now, now,
		)
	}
	return rows
}
