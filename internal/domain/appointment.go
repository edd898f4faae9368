package domain

import (
	"time"

	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus converts a string into a known status
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

// Appointment represents a booked wash slot
type Appointment struct {
	ID         int64
	CustomerID int64
	ServiceID  string
	Date       time.Time        // calendar date, no time component
	StartTime  types.TimeString // slot-aligned wall-clock time
	Status     AppointmentStatus

	// Denormalized service data, fixed at booking time
	ServiceName string
	Price       int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the appointment keeps its (date, time) slot
// unavailable for other customers
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusCancelled
}

// CanTransitionTo reports whether the status transition is allowed.
// The machine is one-way out of pending: pending → completed and
// pending → cancelled are the only valid moves; everything else
// (including same-state updates) is a no-op for the caller.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// AppointmentsFilter filter for listing appointments
type AppointmentsFilter struct {
	Date       *time.Time // exact calendar date
	CustomerID *int64
}
