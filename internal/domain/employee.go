package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrEmployeeNotFound is returned by directories when an id or email is unknown.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmailTaken is returned when another employee already uses the email.
	ErrEmailTaken = errors.New("email already in use")
)

// Role enumerates portal role tags.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// EmployeeStatus represents the employment state shown in the directory.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusInactive EmployeeStatus = "INACTIVE"
	EmployeeStatusOnLeave  EmployeeStatus = "ON_LEAVE"
)

// Employee is a directory record. SupervisorName is a display name, not an id.
type Employee struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	Position       *string
	Department     *string
	Roles          []Role
	SupervisorName *string
	Status         EmployeeStatus
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName renders the display name used for supervisor links.
func FullName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

// FullName returns the employee's display name.
func (e Employee) FullName() string {
	return FullName(e.FirstName, e.LastName)
}

// HasRole reports whether the employee carries any of the given roles.
func (e Employee) HasRole(roles ...Role) bool {
	for _, have := range e.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a copy that shares no slices or pointers with e.
func (e Employee) Clone() Employee {
	out := e
	out.Roles = append([]Role(nil), e.Roles...)
	out.Phone = cloneString(e.Phone)
	out.Position = cloneString(e.Position)
	out.Department = cloneString(e.Department)
	out.SupervisorName = cloneString(e.SupervisorName)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
