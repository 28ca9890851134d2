// Package schema creates the tables the stores rely on. Statements are idempotent
// and run at startup; constraint names are matched by the feature error mappers.
package schema

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ConstraintEmployeeEmail      = "uq_employees_email"
	ConstraintAttendanceUnique   = "uq_attendance_employee_date"
	ConstraintAttendanceEmployee = "fk_attendance_employee"
)

var postgresDDL = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		employee_id TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL,
		email       TEXT NOT NULL,
		department  TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_employees_email UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date        TEXT NOT NULL,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT fk_attendance_employee FOREIGN KEY (employee_id)
			REFERENCES employees (employee_id) ON DELETE CASCADE,
		CONSTRAINT uq_attendance_employee_date UNIQUE (employee_id, date),
		CONSTRAINT chk_attendance_status CHECK (status IN ('Present', 'Absent'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id             TEXT PRIMARY KEY,
		request_id     TEXT NOT NULL DEFAULT '',
		aggregate_type TEXT NOT NULL,
		aggregate_id   TEXT NOT NULL,
		event_type     TEXT NOT NULL,
		topic          TEXT NOT NULL,
		payload        BYTEA NOT NULL,
		status         TEXT NOT NULL,
		retry_count    INTEGER NOT NULL DEFAULT 0,
		error_message  TEXT,
		next_retry_at  TIMESTAMPTZ,
		processed_at   TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, created_at)`,
}

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		employee_id TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL,
		email       TEXT NOT NULL,
		department  TEXT NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uq_employees_email UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		date        TEXT NOT NULL,
		status      TEXT NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_attendance_employee FOREIGN KEY (employee_id)
			REFERENCES employees (employee_id) ON DELETE CASCADE,
		CONSTRAINT uq_attendance_employee_date UNIQUE (employee_id, date),
		CONSTRAINT chk_attendance_status CHECK (status IN ('Present', 'Absent'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id             TEXT PRIMARY KEY,
		request_id     TEXT NOT NULL DEFAULT '',
		aggregate_type TEXT NOT NULL,
		aggregate_id   TEXT NOT NULL,
		event_type     TEXT NOT NULL,
		topic          TEXT NOT NULL,
		payload        BLOB NOT NULL,
		status         TEXT NOT NULL,
		retry_count    INTEGER NOT NULL DEFAULT 0,
		error_message  TEXT,
		next_retry_at  DATETIME,
		processed_at   DATETIME,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, created_at)`,
}

func Migrate(db *gorm.DB) error {
	var statements []string
	switch name := db.Dialector.Name(); name {
	case "postgres":
		statements = postgresDDL
	case "sqlite":
		statements = sqliteDDL
	default:
		return fmt.Errorf("schema: unsupported dialect %q", name)
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	zap.L().Named("schema").Info("schema ready", zap.String("dialect", db.Dialector.Name()))
	return nil
}
