package model

// Service is a bookable medical service offered through clinic slots
type Service struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Description     string `db:"description" json:"description"`
	PriceRange      string `db:"price_range" json:"price_range"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
	IsUrgent        bool   `db:"is_urgent" json:"is_urgent"`
	Category        string `db:"category" json:"category"`
	Icon            string `db:"icon" json:"icon"`
}
