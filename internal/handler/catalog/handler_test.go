package catalog

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

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListTreatmentTypes(ctx context.Context, filter model.TreatmentFilter) ([]*model.TreatmentType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*model.TreatmentType), args.Error(1)
}

func (m *mockCatalog) ListServicePrices(ctx context.Context, nameFilter string) ([]*model.ServicePrice, error) {
	args := m.Called(ctx, nameFilter)
	return args.Get(0).([]*model.ServicePrice), args.Error(1)
}

func (m *mockCatalog) GetServicePrice(ctx context.Context, name string) (*model.ServicePrice, error) {
	args := m.Called(ctx, name)
	if p, ok := args.Get(0).(*model.ServicePrice); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) ListSupportQuestions(ctx context.Context, topic string) ([]*model.SupportQuestion, error) {
	args := m.Called(ctx, topic)
	return args.Get(0).([]*model.SupportQuestion), args.Error(1)
}

func setup() (*gin.Engine, *mockCatalog) {
	gin.SetMode(gin.TestMode)
	svc := new(mockCatalog)
	r := gin.New()
	r.Use(middleware.ErrorHandler(middleware.DefaultValidationConfig()))
	NewHandler(svc).RegisterRoutes(r.Group("/api"), nil)
	return r, svc
}

func get(r *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Code
}

func TestListTreatmentTypes_BindsFilter(t *testing.T) {
	r, svc := setup()
	svc.On("ListTreatmentTypes", mock.Anything, model.TreatmentFilter{Category: "dental", PopularOnly: true}).
		Return([]*model.TreatmentType{}, nil)

	assert.Equal(t, http.StatusOK, get(r, "/api/treatment-types?category=dental&popular=true"))
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/treatment-types?popular=maybe"))
	svc.AssertExpectations(t)
}

func TestServicePrices(t *testing.T) {
	r, svc := setup()
	svc.On("ListServicePrices", mock.Anything, "blood").Return([]*model.ServicePrice{}, nil)
	svc.On("GetServicePrice", mock.Anything, "MRI Scan").Return(&model.ServicePrice{ServiceName: "MRI Scan"}, nil)
	svc.On("GetServicePrice", mock.Anything, "Nothing").Return(nil, apperrors.NotFound("Service price", nil))

	assert.Equal(t, http.StatusOK, get(r, "/api/service-prices?service_name=blood"))
	assert.Equal(t, http.StatusOK, get(r, "/api/service-prices/MRI%20Scan"))
	assert.Equal(t, http.StatusNotFound, get(r, "/api/service-prices/Nothing"))
}

func TestSupportQuestions(t *testing.T) {
	r, svc := setup()
	svc.On("ListSupportQuestions", mock.Anything, "billing").Return([]*model.SupportQuestion{}, nil).Twice()
	svc.On("ListSupportQuestions", mock.Anything, "").Return([]*model.SupportQuestion{}, nil).Once()

	assert.Equal(t, http.StatusOK, get(r, "/api/support-questions"))
	assert.Equal(t, http.StatusOK, get(r, "/api/support-questions?topic=billing"))
	assert.Equal(t, http.StatusOK, get(r, "/api/support-questions/billing"))
	svc.AssertExpectations(t)
}
