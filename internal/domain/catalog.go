package domain

// Period is a named group of catalog slots
type Period struct {
	Name  string     `json:"name"`
	Slots []TimeSlot `json:"slots"`
}

// Catalog periods offered to stylists in regular mode. Every slot is one hour long.
var Catalog = []Period{
	{
		Name: "Morning",
		Slots: []TimeSlot{
			{From: "09:00", Till: "10:00"},
			{From: "10:00", Till: "11:00"},
			{From: "11:00", Till: "12:00"},
		},
	},
	{
		Name: "Afternoon",
		Slots: []TimeSlot{
			{From: "12:00", Till: "13:00"},
			{From: "13:00", Till: "14:00"},
			{From: "14:00", Till: "15:00"},
			{From: "15:00", Till: "16:00"},
		},
	},
	{
		Name: "Evening",
		Slots: []TimeSlot{
			{From: "16:00", Till: "17:00"},
			{From: "17:00", Till: "18:00"},
			{From: "18:00", Till: "19:00"},
		},
	},
}

// IsCatalogSlot reports whether slot matches one of the catalog entries
func IsCatalogSlot(slot TimeSlot) bool {
	for _, period := range Catalog {
		if ContainsSlot(period.Slots, slot) {
			return true
		}
	}
	return false
}

// CatalogSlots returns all catalog slots in display order
func CatalogSlots() []TimeSlot {
	all := make([]TimeSlot, 0, 10)
	for _, period := range Catalog {
		all = append(all, period.Slots...)
	}
	return all
}
