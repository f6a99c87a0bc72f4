package hierarchy

import (
	"strings"

	"github.com/spec-kit/hr-portal/internal/domain"
)

// Resolve finds the supervisor of e among eligible by exact full-name match.
// Duplicate names resolve to the first match in enumeration order.
func Resolve(eligible []domain.Employee, e domain.Employee) (domain.Employee, bool) {
	name, ok := supervisorKey(e)
	if !ok {
		return domain.Employee{}, false
	}
	for _, candidate := range eligible {
		if candidate.FullName() == name {
			return candidate, true
		}
	}
	return domain.Employee{}, false
}

// Resolver is Resolve with the candidate names indexed once per build.
type Resolver struct {
	eligible []domain.Employee
	byName   map[string]int
}

// NewResolver indexes eligible by full name, keeping the first occurrence of each name.
func NewResolver(eligible []domain.Employee) *Resolver {
	byName := make(map[string]int, len(eligible))
	for i, e := range eligible {
		name := e.FullName()
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}
	return &Resolver{eligible: eligible, byName: byName}
}

// Resolve returns the supervisor of e, if its stored name matches an eligible employee.
func (r *Resolver) Resolve(e domain.Employee) (domain.Employee, bool) {
	name, ok := supervisorKey(e)
	if !ok {
		return domain.Employee{}, false
	}
	i, found := r.byName[name]
	if !found {
		return domain.Employee{}, false
	}
	return r.eligible[i], true
}

func supervisorKey(e domain.Employee) (string, bool) {
	if e.SupervisorName == nil {
		return "", false
	}
	name := strings.TrimSpace(*e.SupervisorName)
	if name == "" {
		return "", false
	}
	return name, true
}
