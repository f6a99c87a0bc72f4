package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hr-portal/internal/domain"
)

// InMemoryEmployeeRepository keeps the directory in a slice, in creation order.
// It backs local runs without POSTGRES_DSN and the service tests.
type InMemoryEmployeeRepository struct {
	mu        sync.RWMutex
	employees []domain.Employee
	now       func() time.Time
}

// NewInMemoryEmployeeRepository builds an empty directory.
func NewInMemoryEmployeeRepository() *InMemoryEmployeeRepository {
	return &InMemoryEmployeeRepository{now: func() time.Time { return time.Now().UTC() }}
}

func (r *InMemoryEmployeeRepository) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(employee.Email, "") {
		return domain.ErrEmailTaken
	}
	employee.ID = uuid.NewString()
	employee.CreatedAt = r.now()
	employee.UpdatedAt = employee.CreatedAt
	r.employees = append(r.employees, employee.Clone())
	return nil
}

func (r *InMemoryEmployeeRepository) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(employee.ID)
	if i < 0 {
		return domain.ErrEmployeeNotFound
	}
	if r.emailTaken(employee.Email, employee.ID) {
		return domain.ErrEmailTaken
	}
	employee.CreatedAt = r.employees[i].CreatedAt
	employee.UpdatedAt = r.now()
	r.employees[i] = employee.Clone()
	return nil
}

func (r *InMemoryEmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrEmployeeNotFound
	}
	r.employees = append(r.employees[:i], r.employees[i+1:]...)
	return nil
}

func (r *InMemoryEmployeeRepository) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	employee := r.employees[i].Clone()
	return &employee, nil
}

func (r *InMemoryEmployeeRepository) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.Email == email {
			employee := e.Clone()
			return &employee, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *InMemoryEmployeeRepository) List(_ context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if search != "" {
			name := strings.ToLower(e.FirstName + " " + e.LastName)
			if !strings.Contains(name, search) && !strings.Contains(strings.ToLower(e.Email), search) {
				continue
			}
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

func (r *InMemoryEmployeeRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.employees), nil
}

func (r *InMemoryEmployeeRepository) indexOf(id string) int {
	for i, e := range r.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (r *InMemoryEmployeeRepository) emailTaken(email, exceptID string) bool {
	for _, e := range r.employees {
		if e.Email == email && e.ID != exceptID {
			return true
		}
	}
	return false
}

var _ EmployeeRepository = (*InMemoryEmployeeRepository)(nil)
