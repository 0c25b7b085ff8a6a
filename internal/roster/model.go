// Package roster manages each tenant's employee list.
package roster

import "time"

// StartDateLayout matches the day format the clients render (DD-MM-YYYY).
const StartDateLayout = "02-01-2006"

type Employee struct {
	ID        string
	TenantID  string
	FirstName string
	LastName  string
	StartDate time.Time
}

// employeeRow is the scan target; start_date comes back as DATE.
type employeeRow struct {
	ID        string
	TenantID  string
	FirstName string
	LastName  string
	StartDate time.Time
}

func (r employeeRow) toModel() Employee {
	return Employee{
		ID:        r.ID,
		TenantID:  r.TenantID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		StartDate: r.StartDate.UTC(),
	}
}

func (e Employee) toDTO() EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		StartDate: e.StartDate.Format(StartDateLayout),
	}
}
