package model

import (
	"github.com/lib/pq"
)

type Clinic struct {
	ID         int64          `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	ImageURL   string         `db:"image_url" json:"image_url"`
	Rating     float64        `db:"rating" json:"rating"`
	Distance   string         `db:"distance" json:"distance"`
	PriceRange string         `db:"price_range" json:"price_range"`
	Features   StringList     `db:"features" json:"features"`
	Address    string         `db:"address" json:"address"`
	Phone      string         `db:"phone" json:"phone"`
	Email      string         `db:"email" json:"email"`
	Website    string         `db:"website" json:"website"`
	Services   pq.StringArray `db:"services" json:"services"`
}
