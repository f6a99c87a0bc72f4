package dto

import "time"

// EmployeeCreateRequest is the chart add payload.
type EmployeeCreateRequest struct {
	FirstName  string  `json:"firstName" validate:"required,notblank,max=25"`
	LastName   string  `json:"lastName" validate:"required,notblank,max=25"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Phone      string  `json:"phone" validate:"max=20"`
	Position   string  `json:"position" validate:"max=50"`
	Department string  `json:"department" validate:"max=25"`
	SuperiorID *string `json:"superiorId"`
}

// EmployeeUpdateRequest is the chart edit payload; only members present are applied.
type EmployeeUpdateRequest struct {
	FirstName  Field[string] `json:"firstName"`
	LastName   Field[string] `json:"lastName"`
	Email      Field[string] `json:"email"`
	Phone      Field[string] `json:"phone"`
	Position   Field[string] `json:"position"`
	Department Field[string] `json:"department"`
	SuperiorID Field[string] `json:"superiorId"`
}

// EmployeeUpdateCheck mirrors EmployeeUpdateRequest for tag validation.
type EmployeeUpdateCheck struct {
	FirstName  *string `json:"firstName" validate:"omitnil,notblank,max=25"`
	LastName   *string `json:"lastName" validate:"omitnil,notblank,max=25"`
	Email      *string `json:"email" validate:"omitnil,email,max=255"`
	Phone      *string `json:"phone" validate:"omitnil,max=20"`
	Position   *string `json:"position" validate:"omitnil,max=50"`
	Department *string `json:"department" validate:"omitnil,max=25"`
}

// Check extracts the present values for validation.
func (r EmployeeUpdateRequest) Check() EmployeeUpdateCheck {
	return EmployeeUpdateCheck{
		FirstName:  r.FirstName.Ptr(),
		LastName:   r.LastName.Ptr(),
		Email:      r.Email.Ptr(),
		Phone:      r.Phone.Ptr(),
		Position:   r.Position.Ptr(),
		Department: r.Department.Ptr(),
	}
}

// NullRequiredFields lists required members that were sent as null.
func (r EmployeeUpdateRequest) NullRequiredFields() []string {
	var out []string
	if r.FirstName.Null {
		out = append(out, "firstName")
	}
	if r.LastName.Null {
		out = append(out, "lastName")
	}
	if r.Email.Null {
		out = append(out, "email")
	}
	return out
}

// ChartNodeResponse is one employee on the chart.
type ChartNodeResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Position   string              `json:"position"`
	Department string              `json:"department"`
	SuperiorID *string             `json:"superiorId"`
	Children   []ChartNodeResponse `json:"children"`
}

// EmployeeResponse is a directory record.
type EmployeeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	Position       *string   `json:"position"`
	Department     *string   `json:"department"`
	Roles          []string  `json:"roles"`
	Status         string    `json:"status"`
	SupervisorName *string   `json:"supervisorName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
