package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Get(ctx context.Context, userID int64) (*model.UserSettings, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*model.UserSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, s *model.UserSettings) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

func TestGet_DefaultsWhenMissing(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, int64(4)).Return(nil, repository.ErrNotFound)

	got, err := svc.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultUserSettings(4), got)
}

func TestSave_ForcesOwnerAndDefaults(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("Upsert", ctx, mock.MatchedBy(func(s *model.UserSettings) bool {
		return s.UserID == 4 && s.Theme == "dark" && s.Language == "en" && s.FontSize == "medium"
	})).Return(true, nil)

	created, err := svc.Save(ctx, 4, &model.UserSettings{UserID: 99, Theme: "dark"})
	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
}
