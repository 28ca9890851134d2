package attendance

import (
	"context"
	"time"

	attendanceerrors "github.com/pathakpriyanka774/hrms-lite/internal/attendance/errors"
	"github.com/pathakpriyanka774/hrms-lite/internal/employee"
	"github.com/pathakpriyanka774/hrms-lite/internal/events"
	"github.com/pathakpriyanka774/hrms-lite/internal/messaging/kafka"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListForEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]AttendanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

// NewService checks employee references through employees, inside the same transaction as the write.
// outboxRepo may be nil.
func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	employeeID := employee.NormalizeEmployeeID(req.EmployeeID)
	if employeeID == "" {
		s.logger.Warn("mark attendance missing employee id", zap.String("request_id", rid))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	// An unknown employee is reported before the date and status are looked at.
	exists, err := s.employees.WithTx(tx).Exists(ctx, employeeID)
	if err != nil {
		s.logger.Error("mark attendance employee check failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !exists {
		s.logger.Warn("mark attendance unknown employee", zap.String("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	row, err := NewAttendance(req)
	if err != nil {
		s.logger.Warn("mark attendance validation failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	// The unique (employee_id, date) index decides between concurrent marks.
	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("mark attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		} else {
			s.logger.Warn("mark attendance rejected by constraint",
				zap.String("employee_id", row.EmployeeID),
				zap.String("date", row.Date),
				zap.Error(mapped),
			)
		}
		return AttendanceResponse{}, mapped
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", row.EmployeeID, events.EventAttendanceMarked, events.AttendanceTopic,
			events.AttendanceMarkedEvent{
				EventType:    events.EventAttendanceMarked,
				RequestID:    rid,
				AttendanceID: row.ID,
				EmployeeID:   row.EmployeeID,
				Date:         row.Date,
				Status:       row.Status,
				OccurredAt:   time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("mark attendance build event failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.Int64("attendance_id", row.ID), zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.Int64("attendance_id", row.ID),
		zap.String("employee_id", row.EmployeeID),
		zap.String("date", row.Date),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]AttendanceResponse, error) {
	id := employee.NormalizeEmployeeID(employeeID)
	s.logger.Debug("list attendance requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", id),
		zap.String("start_date", filter.StartDate),
		zap.String("end_date", filter.EndDate),
	)

	if id == "" {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	exists, err := s.employees.Exists(ctx, id)
	if err != nil {
		s.logger.Error("list attendance employee check failed", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	start, end, err := filter.Bounds()
	if err != nil {
		s.logger.Warn("list attendance invalid filter", zap.Error(err))
		return nil, err
	}
	if start != "" && end != "" && start > end {
		return []AttendanceResponse{}, nil
	}

	rows, err := s.repo.FindByEmployee(ctx, id, start, end)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("employee_id", id), zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status,
	}
}
