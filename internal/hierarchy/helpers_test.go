package hierarchy

import "github.com/spec-kit/hr-portal/internal/domain"

func manager(id, first, last, supervisor string) domain.Employee {
	return employee(id, first, last, supervisor, domain.RoleManager)
}

func employee(id, first, last, supervisor string, roles ...domain.Role) domain.Employee {
	e := domain.Employee{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     id + "@example.com",
		Roles:     roles,
		Status:    domain.EmployeeStatusActive,
	}
	if supervisor != "" {
		e.SupervisorName = &supervisor
	}
	return e
}

func ids(nodes []*ChartNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Employee.ID)
	}
	return out
}

func employeeIDs(employees []domain.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}
