package dashboard

type EmployeeStat struct {
	EmployeeID  string `json:"employee_id" gorm:"column:employee_id"`
	FullName    string `json:"full_name" gorm:"column:full_name"`
	PresentDays int64  `json:"present_days" gorm:"column:present_days"`
	TotalDays   int64  `json:"total_days" gorm:"column:total_days"`
}

type DashboardStats struct {
	TotalEmployees         int64          `json:"total_employees"`
	TotalAttendanceRecords int64          `json:"total_attendance_records"`
	EmployeeStats          []EmployeeStat `json:"employee_stats"`
}
