package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pathakpriyanka774/hrms-lite/internal/attendance"
	attendanceerrors "github.com/pathakpriyanka774/hrms-lite/internal/attendance/errors"
	attendanceMock "github.com/pathakpriyanka774/hrms-lite/internal/attendance/mock"
	employeeMock "github.com/pathakpriyanka774/hrms-lite/internal/employee/mock"
	"github.com/pathakpriyanka774/hrms-lite/internal/events"
	"github.com/pathakpriyanka774/hrms-lite/internal/messaging/kafka"
	kafkaMock "github.com/pathakpriyanka774/hrms-lite/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *attendanceMock.MockRepository
	employees *employeeMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	repo := attendanceMock.NewMockRepository(ctrl)
	employees := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   attendance.NewService(gdb, repo, employees, outboxRepo),
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_Mark(t *testing.T) {
	ctx := context.Background()

	t.Run("success - assigns id and normalizes", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, a *attendance.Attendance) error {
				assert.Equal(t, "E001", a.EmployeeID)
				assert.Equal(t, "2024-01-15", a.Date)
				assert.Equal(t, attendance.StatusPresent, a.Status)
				a.ID = 42
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				var payload events.AttendanceMarkedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, events.AttendanceTopic, ev.Topic)
				assert.Equal(t, int64(42), payload.AttendanceID)
				return nil
			})

		resp, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: " E001 ",
			Date:       "2024-01-15",
			Status:     "  pReSeNt ",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.AttendanceResponse{
			ID:         42,
			EmployeeID: "E001",
			Date:       "2024-01-15",
			Status:     "Present",
		}, resp)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("blank employee id never opens a transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "   ",
			Date:       "2024-01-15",
			Status:     "Present",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid status for known employee -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "E001",
			Date:       "2024-01-15",
			Status:     "Late",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee wins over invalid date and status", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E404").Return(false, nil)

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "E404",
			Date:       "not-a-date",
			Status:     "Late",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E404").Return(false, nil)

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "E404",
			Date:       "2024-01-15",
			Status:     "Absent",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate day -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"})

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "E001",
			Date:       "2024-01-15",
			Status:     "Absent",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyMarked)
	})

	t.Run("employee deleted concurrently -> foreign key maps to not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23503", ConstraintName: "fk_attendance_employee"})

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "E001",
			Date:       "2024-01-15",
			Status:     "Absent",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("infrastructure error passes through", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		dbErr := errors.New("connection reset")
		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().Exists(ctx, "E001").Return(false, dbErr)

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: "E001",
			Date:       "2024-01-15",
			Status:     "Absent",
		})

		assert.Equal(t, dbErr, err)
	})
}

func TestAttendanceService_ListForEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success with inclusive bounds", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)
		deps.repo.EXPECT().
			FindByEmployee(ctx, "E001", "2024-01-10", "2024-01-20").
			Return([]attendance.Attendance{
				{ID: 3, EmployeeID: "E001", Date: "2024-01-20", Status: "Present"},
				{ID: 1, EmployeeID: "E001", Date: "2024-01-10", Status: "Absent"},
			}, nil)

		resp, err := deps.service.ListForEmployee(ctx, "E001", attendance.ListFilter{
			StartDate: "2024-01-10",
			EndDate:   "2024-01-20",
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "2024-01-20", resp[0].Date)
	})

	t.Run("unknown employee is checked before the filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.employees.EXPECT().Exists(ctx, "E404").Return(false, nil)

		_, err := deps.service.ListForEmployee(ctx, "E404", attendance.ListFilter{StartDate: "garbage"})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("malformed bound", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)

		_, err := deps.service.ListForEmployee(ctx, "E001", attendance.ListFilter{EndDate: "2024-13-40"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFilter)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.employees.EXPECT().Exists(ctx, "E001").Return(true, nil)

		resp, err := deps.service.ListForEmployee(ctx, "E001", attendance.ListFilter{
			StartDate: "2024-02-01",
			EndDate:   "2024-01-01",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})
}
