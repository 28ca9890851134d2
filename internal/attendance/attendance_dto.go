package attendance

// Date and Status are validated by the service, after the employee lookup.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type AttendanceResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// ListFilter holds the optional inclusive bounds of a listing, as received.
type ListFilter struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
