package employee

import "time"

type Employee struct {
	EmployeeID string    `gorm:"column:employee_id;primaryKey"`
	FullName   string    `gorm:"column:full_name"`
	Email      string    `gorm:"column:email"`
	Department string    `gorm:"column:department"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Employee) TableName() string {
	return "employees"
}
