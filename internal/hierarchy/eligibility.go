package hierarchy

import "github.com/spec-kit/hr-portal/internal/domain"

// ChartRoles are the roles that place an employee on the chart.
var ChartRoles = []domain.Role{domain.RoleManager, domain.RoleAdmin}

// IsEligible reports whether e participates in the chart.
func IsEligible(e domain.Employee) bool {
	return e.HasRole(ChartRoles...)
}

// Eligible returns the employees holding MANAGER or ADMIN, in input order.
func Eligible(employees []domain.Employee) []domain.Employee {
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if IsEligible(e) {
			out = append(out, e)
		}
	}
	return out
}
