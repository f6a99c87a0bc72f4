package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee.created"
	EventEmployeeUpdated EventType = "employee.updated"
	EventEmployeeDeleted EventType = "employee.deleted"
)

// Event represents a directory change emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID string      `json:"employee_id"`
	ActorID    *string     `json:"actor_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// EmployeeChangedPayload describes a created or updated employee.
type EmployeeChangedPayload struct {
	FullName       string   `json:"full_name"`
	SupervisorName *string  `json:"supervisor_name,omitempty"`
	ChangedFields  []string `json:"changed_fields,omitempty"`
}

// EmployeeDeletedPayload describes a removed employee. Reports that named it as
// supervisor keep their stored name and surface as roots on the next chart build.
type EmployeeDeletedPayload struct {
	FullName      string `json:"full_name"`
	OrphanedCount int    `json:"orphaned_count"`
}
