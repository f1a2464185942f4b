package model

// Slot is a bookable (clinic, service, date, time) combination
type Slot struct {
	ID          int64  `db:"id" json:"id"`
	ClinicID    int64  `db:"clinic_id" json:"clinic_id"`
	ServiceID   int64  `db:"service_id" json:"service_id"`
	Date        string `db:"date" json:"date"`
	Time        string `db:"time" json:"time"`
	IsAvailable bool   `db:"is_available" json:"is_available"`
	ClinicName  string `db:"clinic_name" json:"clinic_name"`
	ServiceName string `db:"service_name" json:"service_name"`
	PriceRange  string `db:"price_range" json:"price_range"`
}

type SlotFilter struct {
	ClinicID  int64  `form:"clinic_id" binding:"omitempty,gt=0"`
	ServiceID int64  `form:"service_id" binding:"omitempty,gt=0"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
