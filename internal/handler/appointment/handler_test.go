package appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/quickmed-api/internal/middleware"
	"github.com/jwalitptl/quickmed-api/internal/model"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	args := m.Called(ctx, req)
	if a, ok := args.Get(0).(*model.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListForUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *mockService) UpdateStatus(ctx context.Context, id, userID int64, status model.AppointmentStatus) (*model.Appointment, error) {
	args := m.Called(ctx, id, userID, status)
	if a, ok := args.Get(0).(*model.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

// fixedCaller accepts any token as user 7
type fixedCaller struct{}

func (fixedCaller) Verify(token string) (*model.Identity, error) {
	if token == "" {
		return nil, apperrors.Unauthorized("Access token required", nil)
	}
	return &model.Identity{UserID: 7, Email: "patient@quickmed.com"}, nil
}

func setup(t *testing.T) (*gin.Engine, *mockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := middleware.DefaultValidationConfig()
	require.NoError(t, middleware.RegisterValidators(cfg))

	svc := new(mockService)
	auth := middleware.NewAuthMiddleware(fixedCaller{})

	r := gin.New()
	r.Use(middleware.ErrorHandler(cfg))
	api := r.Group("/api")
	NewHandler(svc, auth).RegisterRoutes(api, api.Group("", auth.Authenticate()))
	return r, svc
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, httputil.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp httputil.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreateAppointment(t *testing.T) {
	r, svc := setup(t)

	svc.On("Book", mock.Anything, mock.MatchedBy(func(req *model.BookingRequest) bool {
		return req.UserID == 7 && req.ClinicID == 1 && req.Time == "09:00"
	})).Return(&model.Appointment{ID: 42, UserID: 7, Status: model.AppointmentStatusScheduled}, nil)

	w, _ := do(r, http.MethodPost, "/api/appointments",
		`{"clinic_id":1,"service_id":1,"date":"2026-10-16","time":"09:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.Data.ID)
	assert.Equal(t, int64(42), body.Data.Appointment.ID)
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	r, svc := setup(t)
	svc.On("Book", mock.Anything, mock.Anything).Return(nil, apperrors.ErrSlotNotAvailable)

	w, resp := do(r, http.MethodPost, "/api/appointments",
		`{"clinic_id":1,"service_id":1,"date":"2026-10-16","time":"09:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Slot is not available", resp.Message)
}

func TestCreateAppointment_Validation(t *testing.T) {
	r, svc := setup(t)

	w, resp := do(r, http.MethodPost, "/api/appointments", `{"clinic_id":0,"service_id":1,"date":"16/10/2026","time":"09:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "clinic_id", resp.Errors[0].Field)
	assert.Equal(t, "date", resp.Errors[1].Field)
	svc.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
}

func TestListAppointments(t *testing.T) {
	r, svc := setup(t)
	svc.On("ListForUser", mock.Anything, int64(7)).Return([]*model.Appointment{{ID: 1}, {ID: 2}}, nil)

	w, _ := do(r, http.MethodGet, "/api/appointments", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/api/appointments/7", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := do(r, http.MethodGet, "/api/appointments/8", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", resp.Message)

	svc.AssertNumberOfCalls(t, "ListForUser", 2)
}

func TestUpdateAppointment(t *testing.T) {
	r, svc := setup(t)
	svc.On("UpdateStatus", mock.Anything, int64(5), int64(7), model.AppointmentStatusCancelled).
		Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusCancelled}, nil)
	svc.On("UpdateStatus", mock.Anything, int64(6), int64(7), model.AppointmentStatusCancelled).
		Return(nil, apperrors.NotFound("Appointment", nil))

	w, _ := do(r, http.MethodPut, "/api/appointments/5", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := do(r, http.MethodPut, "/api/appointments/6", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Appointment not found", resp.Message)

	w, resp = do(r, http.MethodPut, "/api/appointments/5", `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status", resp.Errors[0].Field)

	w, _ = do(r, http.MethodPut, "/api/appointments/abc", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAppointment(t *testing.T) {
	r, svc := setup(t)
	svc.On("Delete", mock.Anything, int64(5), int64(7)).Return(nil)
	svc.On("Delete", mock.Anything, int64(9), int64(7)).Return(apperrors.NotFound("Appointment", nil))

	w, _ := do(r, http.MethodDelete, "/api/appointments/5", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodDelete, "/api/appointments/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointments_RequireToken(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
