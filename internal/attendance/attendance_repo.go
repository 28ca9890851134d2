package attendance

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]Attendance, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByEmployee applies startDate and endDate as inclusive bounds when they are non-empty.
// Dates are canonical text, so string comparison is calendar order.
func (r *repository) FindByEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]Attendance, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if startDate != "" {
		q = q.Where("date >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date <= ?", endDate)
	}

	rows := make([]Attendance, 0)
	err := q.Order("date DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}
