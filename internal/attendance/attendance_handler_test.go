package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pathakpriyanka774/hrms-lite/internal/attendance"
	attendanceerrors "github.com/pathakpriyanka774/hrms-lite/internal/attendance/errors"
	"github.com/pathakpriyanka774/hrms-lite/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	markFn func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error)
	listFn func(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.markFn(ctx, req)
}
func (f *fakeService) ListForEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.listFn(ctx, employeeID, filter)
}

func newRouter(svc attendance.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	attendance.RegisterRoutes(r.Group("/api/v1"), attendance.NewHandler(svc), func(c *gin.Context) { c.Next() })
	return r
}

func TestHandler_Mark(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeService{
			markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "E001", req.EmployeeID)
				return attendance.AttendanceResponse{ID: 7, EmployeeID: req.EmployeeID, Date: req.Date, Status: "Present"}, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance",
			strings.NewReader(`{"employee_id":"E001","date":"2024-01-15","status":"present"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})

	t.Run("missing employee id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance",
			strings.NewReader(`{"date":"2024-01-15","status":"Present"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&fakeService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Employee Id is required")
	})

	t.Run("missing status is left to the service", func(t *testing.T) {
		svc := &fakeService{
			markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Empty(t, req.Status)
				return attendance.AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance",
			strings.NewReader(`{"employee_id":"E001","date":"2024-01-15"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Status must be 'Present' or 'Absent'")
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := &fakeService{
			markFn: func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAttendanceAlreadyMarked
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance",
			strings.NewReader(`{"employee_id":"E001","date":"2024-01-15","status":"Absent"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Attendance already marked for this date")
	})
}

func TestHandler_ListForEmployee(t *testing.T) {
	t.Run("passes path and query", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
				assert.Equal(t, "E001", employeeID)
				assert.Equal(t, "2024-01-10", filter.StartDate)
				assert.Equal(t, "2024-01-20", filter.EndDate)
				return []attendance.AttendanceResponse{{ID: 1, Date: "2024-01-12"}}, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/E001?start_date=2024-01-10&end_date=2024-01-20", nil)
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2024-01-12")
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
				return nil, attendanceerrors.ErrEmployeeNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/E404", nil)
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
