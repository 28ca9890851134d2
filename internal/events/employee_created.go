package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EventEmployeeCreated = "employee.created"
	EventEmployeeDeleted = "employee.deleted"
)

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EmployeeDeletedEvent struct {
	EventType                string    `json:"event_type"`
	RequestID                string    `json:"request_id,omitempty"`
	EmployeeID               string    `json:"employee_id"`
	RemovedAttendanceRecords int64     `json:"removed_attendance_records"`
	OccurredAt               time.Time `json:"occurred_at"`
}
