package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListTreatmentTypes(ctx context.Context, filter model.TreatmentFilter) ([]*model.TreatmentType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*model.TreatmentType), args.Error(1)
}

func (m *mockRepo) ListServicePrices(ctx context.Context, nameFilter string) ([]*model.ServicePrice, error) {
	args := m.Called(ctx, nameFilter)
	return args.Get(0).([]*model.ServicePrice), args.Error(1)
}

func (m *mockRepo) GetServicePrice(ctx context.Context, name string) (*model.ServicePrice, error) {
	args := m.Called(ctx, name)
	if p, ok := args.Get(0).(*model.ServicePrice); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListSupportQuestions(ctx context.Context, topic string) ([]*model.SupportQuestion, error) {
	args := m.Called(ctx, topic)
	return args.Get(0).([]*model.SupportQuestion), args.Error(1)
}

func TestListTreatmentTypes_TrimsCategory(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("ListTreatmentTypes", ctx, model.TreatmentFilter{Category: "dental", PopularOnly: true}).
		Return([]*model.TreatmentType{{ID: 1, Name: "Cleaning"}}, nil)

	got, err := svc.ListTreatmentTypes(ctx, model.TreatmentFilter{Category: " dental", PopularOnly: true})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetServicePrice(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetServicePrice", ctx, "MRI").Return(&model.ServicePrice{ServiceName: "MRI"}, nil)
	repo.On("GetServicePrice", ctx, "unknown").Return(nil, repository.ErrNotFound)

	price, err := svc.GetServicePrice(ctx, "MRI")
	require.NoError(t, err)
	assert.Equal(t, "MRI", price.ServiceName)

	_, err = svc.GetServicePrice(ctx, "unknown")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())

	_, err = svc.GetServicePrice(ctx, "  ")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestListSupportQuestions_StoreError(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("ListSupportQuestions", ctx, "billing").Return([]*model.SupportQuestion(nil), assert.AnError)

	_, err := svc.ListSupportQuestions(ctx, "billing")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode())
	assert.ErrorIs(t, err, assert.AnError)
}
