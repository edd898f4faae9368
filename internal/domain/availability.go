package domain

import "github.com/m04kA/CWS-BookingService/pkg/types"

// Единственное авторитетное место, где решается доступность слота.
// И выдача списка слотов, и точечная проверка при создании бронирования
// проходят через slotFree, поэтому закон согласованности
// IsTimeAvailable(t) == (t ∈ AvailableTimes) выполняется по построению.

// slotFree reports whether the time is neither blocked nor occupied.
// Appointments and blocks are expected to be pre-filtered to the date
// in question.
func slotFree(t types.TimeString, appointments []*Appointment, blocks []*Block) bool {
	for _, b := range blocks {
		if b.Covers(t) {
			return false
		}
	}
	for _, a := range appointments {
		if a.StartTime == t && a.OccupiesSlot() {
			return false
		}
	}
	return true
}

// AvailableTimes filters the day's slot grid down to the starts that are
// currently bookable given the date's appointments and blocks
func AvailableTimes(slots []types.TimeString, appointments []*Appointment, blocks []*Block) []types.TimeString {
	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slotFree(slot, appointments, blocks) {
			available = append(available, slot)
		}
	}
	return available
}

// IsTimeAvailable reports whether the time is a bookable slot: it must
// be on the day's grid and not excluded by a block or an occupying
// appointment. Used for point re-validation inside the reserve
// transaction.
func IsTimeAvailable(t types.TimeString, slots []types.TimeString, appointments []*Appointment, blocks []*Block) bool {
	onGrid := false
	for _, slot := range slots {
		if slot == t {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return false
	}
	return slotFree(t, appointments, blocks)
}
