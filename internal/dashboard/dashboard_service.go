package dashboard

import (
	"context"
	"database/sql"

	"github.com/pathakpriyanka774/hrms-lite/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (DashboardStats, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Get computes every figure from one read-only snapshot taken for this call.
func (s *service) Get(ctx context.Context) (DashboardStats, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("dashboard requested", zap.String("request_id", rid))

	stats, err := s.load(ctx)
	if err != nil {
		s.logger.Error("dashboard load failed", zap.String("request_id", rid), zap.Error(err))
		return DashboardStats{}, err
	}

	s.logger.Debug("dashboard loaded",
		zap.String("request_id", rid),
		zap.Int64("total_employees", stats.TotalEmployees),
	)
	return stats, nil
}

func (s *service) load(ctx context.Context) (DashboardStats, error) {
	tx := s.db.WithContext(ctx).Begin(snapshotTxOptions(s.db))
	if tx.Error != nil {
		return DashboardStats{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	totalEmployees, err := qtx.CountEmployees(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	totalAttendance, err := qtx.CountAttendance(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	stats, err := qtx.EmployeeStats(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return DashboardStats{}, err
	}

	if stats == nil {
		stats = []EmployeeStat{}
	}
	return DashboardStats{
		TotalEmployees:         totalEmployees,
		TotalAttendanceRecords: totalAttendance,
		EmployeeStats:          stats,
	}, nil
}

// Postgres gets a read-only repeatable-read snapshot. SQLite transactions are already serializable.
func snapshotTxOptions(db *gorm.DB) *sql.TxOptions {
	if db.Dialector.Name() == "postgres" {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return &sql.TxOptions{}
}
