package model

// UserSettings are per-user application preferences
type UserSettings struct {
	UserID               int64  `db:"user_id" json:"user_id"`
	Language             string `db:"language" json:"language" binding:"omitempty,max=10"`
	NotificationsEnabled bool   `db:"notifications_enabled" json:"notifications_enabled"`
	AppointmentReminders bool   `db:"appointment_reminders" json:"appointment_reminders"`
	MedicationReminders  bool   `db:"medication_reminders" json:"medication_reminders"`
	NewsUpdates          bool   `db:"news_updates" json:"news_updates"`
	LocationEnabled      bool   `db:"location_enabled" json:"location_enabled"`
	City                 string `db:"city" json:"city" binding:"max=100"`
	Radius               int    `db:"radius" json:"radius" binding:"gte=0,lte=500"`
	BiometricAuth        bool   `db:"biometric_auth" json:"biometric_auth"`
	AutoLock             bool   `db:"auto_lock" json:"auto_lock"`
	DataSharing          bool   `db:"data_sharing" json:"data_sharing"`
	Theme                string `db:"theme" json:"theme" binding:"omitempty,oneof=light dark auto"`
	FontSize             string `db:"font_size" json:"font_size" binding:"omitempty,oneof=small medium large"`
}

// DefaultUserSettings is what a user sees before saving anything.
func DefaultUserSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:               userID,
		Language:             "en",
		NotificationsEnabled: true,
		AppointmentReminders: true,
		MedicationReminders:  true,
		NewsUpdates:          false,
		LocationEnabled:      true,
		City:                 "",
		Radius:               10,
		BiometricAuth:        false,
		AutoLock:             true,
		DataSharing:          false,
		Theme:                "light",
		FontSize:             "medium",
	}
}

// FillDefaults sets empty enum-like fields to their default values
func (s *UserSettings) FillDefaults() {
	d := DefaultUserSettings(s.UserID)
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	if s.FontSize == "" {
		s.FontSize = d.FontSize
	}
}
