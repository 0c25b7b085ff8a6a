package roster

type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// EmployeeUpdate is one element of the bulk edit payload. The whole record is
// replaced; there is no per-field merge.
type EmployeeUpdate struct {
	ID        string `json:"id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // DD-MM-YYYY
}

type ReplaceEmployeesRequest struct {
	Employees []EmployeeUpdate `json:"employees" binding:"required"`
}

type DeleteEmployeesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	StartDate string `json:"start_date"` // DD-MM-YYYY
}
