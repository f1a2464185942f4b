package model

type TreatmentType struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
	IsPopular   bool   `db:"is_popular" json:"is_popular"`
}

type TreatmentFilter struct {
	Category    string `form:"category"`
	PopularOnly bool   `form:"popular"`
}

type ServicePrice struct {
	ID          int64   `db:"id" json:"id"`
	ServiceName string  `db:"service_name" json:"service_name"`
	PriceRange  string  `db:"price_range" json:"price_range"`
	MinPrice    float64 `db:"min_price" json:"min_price"`
	MaxPrice    float64 `db:"max_price" json:"max_price"`
	Currency    string  `db:"currency" json:"currency"`
}

type SupportQuestion struct {
	ID         int64      `db:"id" json:"id"`
	Topic      string     `db:"topic" json:"topic"`
	Question   string     `db:"question" json:"question"`
	Answer     string     `db:"answer" json:"answer"`
	Options    StringList `db:"options" json:"options"`
	OrderIndex int        `db:"order_index" json:"order_index"`
}
