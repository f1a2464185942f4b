package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/internal/model"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

type mockStats struct {
	mock.Mock
}

func (m *mockStats) count(ctx context.Context, name string) (*model.Count, error) {
	args := m.MethodCalled(name, ctx)
	if c, ok := args.Get(0).(*model.Count); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStats) Users(ctx context.Context) (*model.Count, error) {
	return m.count(ctx, "Users")
}

func (m *mockStats) Clinics(ctx context.Context) (*model.Count, error) {
	return m.count(ctx, "Clinics")
}

func (m *mockStats) Appointments(ctx context.Context) (*model.Count, error) {
	return m.count(ctx, "Appointments")
}

func (m *mockStats) AppointmentsToday(ctx context.Context) (*model.Count, error) {
	return m.count(ctx, "AppointmentsToday")
}

func TestCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockStats)
	svc.On("Users", mock.Anything).Return(&model.Count{Count: 3}, nil)
	svc.On("Clinics", mock.Anything).Return(&model.Count{Count: 2}, nil)
	svc.On("Appointments", mock.Anything).Return(&model.Count{Count: 5}, nil)
	svc.On("AppointmentsToday", mock.Anything).Return(nil, apperrors.Internal(assert.AnError))

	r := gin.New()
	r.Use(middleware.ErrorHandler(middleware.DefaultValidationConfig()))
	NewHandler(svc).RegisterRoutes(r.Group("/api"), nil)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/api/users/count", http.StatusOK, `"count":3`},
		{"/api/clinics/count", http.StatusOK, `"count":2`},
		{"/api/appointments/count", http.StatusOK, `"count":5`},
		{"/api/appointments/today/count", http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
