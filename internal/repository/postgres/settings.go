package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/quickmed-api/internal/model"
	"github.com/jwalitptl/quickmed-api/internal/repository"
)

type settingsRepository struct {
	BaseRepository
}

func NewSettingsRepository(base BaseRepository) repository.SettingsRepository {
	return &settingsRepository{base}
}

func (r *settingsRepository) Get(ctx context.Context, userID int64) (*model.UserSettings, error) {
	query := `
		SELECT user_id, language, notifications_enabled, appointment_reminders,
			medication_reminders, news_updates, location_enabled, city, radius,
			biometric_auth, auto_lock, data_sharing, theme, font_size
		FROM user_settings
		WHERE user_id = $1
	`
	var settings model.UserSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return &settings, nil
}

// Upsert writes the full settings row. created is true when no row existed
// before; xmax is zero only for freshly inserted tuples.
func (r *settingsRepository) Upsert(ctx context.Context, s *model.UserSettings) (bool, error) {
	query := `
		INSERT INTO user_settings (
			user_id, language, notifications_enabled, appointment_reminders,
			medication_reminders, news_updates, location_enabled, city, radius,
			biometric_auth, auto_lock, data_sharing, theme, font_size, updated_at
		) VALUES (
			:user_id, :language, :notifications_enabled, :appointment_reminders,
			:medication_reminders, :news_updates, :location_enabled, :city, :radius,
			:biometric_auth, :auto_lock, :data_sharing, :theme, :font_size, NOW()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			language = EXCLUDED.language,
			notifications_enabled = EXCLUDED.notifications_enabled,
			appointment_reminders = EXCLUDED.appointment_reminders,
			medication_reminders = EXCLUDED.medication_reminders,
			news_updates = EXCLUDED.news_updates,
			location_enabled = EXCLUDED.location_enabled,
			city = EXCLUDED.city,
			radius = EXCLUDED.radius,
			biometric_auth = EXCLUDED.biometric_auth,
			auto_lock = EXCLUDED.auto_lock,
			data_sharing = EXCLUDED.data_sharing,
			theme = EXCLUDED.theme,
			font_size = EXCLUDED.font_size,
			updated_at = NOW()
		RETURNING (xmax = 0) AS created
	`
	rows, err := r.db.NamedQueryContext(ctx, query, s)
	if err != nil {
		return false, fmt.Errorf("failed to save user settings: %w", err)
	}
	defer rows.Close()

	var created bool
	if rows.Next() {
		if err := rows.Scan(&created); err != nil {
			return false, fmt.Errorf("failed to read upsert result: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to save user settings: %w", err)
	}
	return created, nil
}
