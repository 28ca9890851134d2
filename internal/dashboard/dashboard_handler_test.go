package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pathakpriyanka774/hrms-lite/internal/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getFn func(ctx context.Context) (dashboard.DashboardStats, error)
}

func (f *fakeService) Get(ctx context.Context) (dashboard.DashboardStats, error) {
	return f.getFn(ctx)
}

func TestHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ok", func(t *testing.T) {
		svc := &fakeService{getFn: func(ctx context.Context) (dashboard.DashboardStats, error) {
			return dashboard.DashboardStats{
				TotalEmployees: 1,
				EmployeeStats:  []dashboard.EmployeeStat{{EmployeeID: "E1", FullName: "Ann"}},
			}, nil
		}}

		r := gin.New()
		dashboard.RegisterRoutes(r.Group("/api/v1"), dashboard.NewHandler(svc))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_employees":1`)
		assert.Contains(t, w.Body.String(), `"present_days":0`)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := &fakeService{getFn: func(ctx context.Context) (dashboard.DashboardStats, error) {
			return dashboard.DashboardStats{}, errors.New("db down")
		}}

		r := gin.New()
		dashboard.RegisterRoutes(r.Group("/api/v1"), dashboard.NewHandler(svc))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}
