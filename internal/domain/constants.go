package domain

// Slot grid constants
const (
	// SlotDurationMinutes фиксированный шаг сетки бронирования
	SlotDurationMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
