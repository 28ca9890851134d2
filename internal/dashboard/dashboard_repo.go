package dashboard

import (
	"context"

	"gorm.io/gorm"
)

const employeeStatsQuery = `
	SELECT
		e.employee_id,
		e.full_name,
		COALESCE(SUM(CASE WHEN a.status = 'Present' THEN 1 ELSE 0 END), 0) AS present_days,
		COUNT(a.id) AS total_days
	FROM employees e
	LEFT JOIN attendance a ON a.employee_id = e.employee_id
	GROUP BY e.employee_id, e.full_name
	ORDER BY present_days DESC, e.employee_id ASC`

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountEmployees(ctx context.Context) (int64, error)
	CountAttendance(ctx context.Context) (int64, error)
	EmployeeStats(ctx context.Context) ([]EmployeeStat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("employees").Count(&n).Error
	return n, err
}

func (r *repository) CountAttendance(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("attendance").Count(&n).Error
	return n, err
}

// EmployeeStats lists every employee, including those without attendance,
// ranked by present days with employee_id as the tie-break.
func (r *repository) EmployeeStats(ctx context.Context) ([]EmployeeStat, error) {
	stats := make([]EmployeeStat, 0)
	err := r.db.WithContext(ctx).Raw(employeeStatsQuery).Scan(&stats).Error
	return stats, err
}
