package main

import "github.com/jwalitptl/quickmed-api/internal/model"

var clinics = []*model.Clinic{
	{
		Name:       "Heart Health Clinic",
		ImageURL:   "/images/clinic1.jpg",
		Rating:     4.8,
		Distance:   "2.5 km",
		PriceRange: "₪200-₪500",
		Features:   model.StringList{"Free parking", "Wheelchair access", "Emergency room"},
		Address:    "15 Herzl St, Tel Aviv",
		Phone:      "03-1234567",
		Email:      "info@levhealth.co.il",
		Website:    "www.levhealth.co.il",
	},
	{
		Name:       "Digital Medical Center",
		ImageURL:   "/images/clinic2.jpg",
		Rating:     4.6,
		Distance:   "1.8 km",
		PriceRange: "₪150-₪400",
		Features:   model.StringList{"Digital care", "Online booking", "App tracking"},
		Address:    "30 Rothschild Blvd, Tel Aviv",
		Phone:      "03-7654321",
		Email:      "contact@digitalmed.co.il",
		Website:    "www.digitalmed.co.il",
	},
}

var services = []*model.Service{
	{Name: "General Checkup", Description: "Comprehensive medical examination", PriceRange: "₪200-₪300", DurationMinutes: 30, Category: "general", Icon: "bi-heart-pulse"},
	{Name: "X-Ray", Description: "Diagnostic X-ray imaging", PriceRange: "₪150-₪250", DurationMinutes: 15, Category: "imaging", Icon: "bi-camera"},
	{Name: "Urgent Care", Description: "Urgent medical treatment", PriceRange: "₪300-₪500", DurationMinutes: 45, IsUrgent: true, Category: "emergency", Icon: "bi-ambulance"},
	{Name: "Cardiology Consultation", Description: "Heart specialist consultation", PriceRange: "₪350-₪600", DurationMinutes: 40, Category: "cardiology", Icon: "bi-heart"},
}

var treatmentTypes = []*model.TreatmentType{
	{Name: "Family Medicine", Category: "general", Description: "Primary care for all ages", IsPopular: true},
	{Name: "Cardiology", Category: "specialist", Description: "Heart and blood vessel care", IsPopular: true},
	{Name: "Dermatology", Category: "specialist", Description: "Skin, hair and nail care"},
	{Name: "Physiotherapy", Category: "rehabilitation", Description: "Movement and injury recovery"},
}

var servicePrices = []*model.ServicePrice{
	{ServiceName: "General Checkup", PriceRange: "₪200-₪300", MinPrice: 200, MaxPrice: 300, Currency: "ILS"},
	{ServiceName: "X-Ray", PriceRange: "₪150-₪250", MinPrice: 150, MaxPrice: 250, Currency: "ILS"},
	{ServiceName: "Urgent Care", PriceRange: "₪300-₪500", MinPrice: 300, MaxPrice: 500, Currency: "ILS"},
	{ServiceName: "Blood Test", PriceRange: "₪80-₪150", MinPrice: 80, MaxPrice: 150, Currency: "ILS"},
}

var questions = []*model.SupportQuestion{
	{Topic: "appointments", Question: "How do I cancel an appointment?", Answer: "Open My Appointments and choose Cancel.", OrderIndex: 1},
	{Topic: "appointments", Question: "Can I book for someone else?", Answer: "Each account books for its own holder.", OrderIndex: 2},
	{Topic: "billing", Question: "Which payment methods are accepted?", Answer: "Payment is made at the clinic.", Options: model.StringList{"Credit card", "Cash"}, OrderIndex: 1},
	{Topic: "account", Question: "How do I change my notification settings?", Answer: "Go to Settings and adjust Notifications.", OrderIndex: 1},
}
