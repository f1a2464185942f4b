package settings

import (
	"context"
	"errors"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
	apperrors "github.com/jwalitptl/quickmed-api/pkg/errors"
)

type Servicer interface {
	Get(ctx context.Context, userID int64) (*model.UserSettings, error)
	Save(ctx context.Context, userID int64, s *model.UserSettings) (created bool, err error)
}

type Service struct {
	repo repository.SettingsRepository
}

func NewService(repo repository.SettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings, or the defaults when the user never
// saved any.
func (s *Service) Get(ctx context.Context, userID int64) (*model.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.DefaultUserSettings(userID), nil
		}
		return nil, apperrors.Internal(err)
	}
	return settings, nil
}

func (s *Service) Save(ctx context.Context, userID int64, settings *model.UserSettings) (bool, error) {
	settings.UserID = userID
	settings.FillDefaults()

	created, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return created, nil
}
