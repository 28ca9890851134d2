package attendance

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// DateLayout is the canonical text form a date is stored and compared in.
const DateLayout = "2006-01-02"

type Attendance struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID string    `gorm:"column:employee_id"`
	Date       string    `gorm:"column:date"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}
