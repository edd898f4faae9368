package domain

import (
	"time"

	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// DaySchedule opening window for one weekday
type DaySchedule struct {
	IsOpen bool
	Open   types.TimeString
	Close  types.TimeString
}

// WeekSchedule opening windows keyed by weekday (time.Weekday order,
// Sunday = 0). Process-wide immutable configuration, loaded at start.
type WeekSchedule [7]DaySchedule

// WindowFor returns the opening window for the date's weekday
func (w WeekSchedule) WindowFor(date time.Time) DaySchedule {
	return w[date.Weekday()]
}

// SlotsFor returns the ordered sequence of bookable slot starts for the
// given calendar date. Slots start at the window's open time and advance
// by the fixed 30-minute step; a slot whose interval would run past the
// close time is not emitted, so the close boundary itself is never a
// bookable start. Closed days produce an empty sequence.
//
// The result is recomputed on every call: the schedule is immutable and
// generation is cheap, so there is nothing to cache.
func (w WeekSchedule) SlotsFor(date time.Time) []types.TimeString {
	day := w.WindowFor(date)
	if !day.IsOpen || day.Open.IsZero() || day.Close.IsZero() {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)
	current := day.Open

	for current.IsBefore(day.Close) {
		slotEnd, err := current.AddMinutes(SlotDurationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(day.Close) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(SlotDurationMinutes)
		if err != nil {
			break
		}
	}

	return slots
}

// ContainsSlot reports whether the given time is a valid slot start on
// that date's grid
func (w WeekSchedule) ContainsSlot(date time.Time, t types.TimeString) bool {
	for _, slot := range w.SlotsFor(date) {
		if slot == t {
			return true
		}
	}
	return false
}

// DefaultWeekSchedule расписание мойки по умолчанию:
// воскресенье–четверг 18:00–21:00, пятница 12:30–16:00, суббота выходной.
func DefaultWeekSchedule() WeekSchedule {
	evening := DaySchedule{IsOpen: true, Open: "18:00", Close: "21:00"}

	var w WeekSchedule
	w[time.Sunday] = evening
	w[time.Monday] = evening
	w[time.Tuesday] = evening
	w[time.Wednesday] = evening
	w[time.Thursday] = evening
	w[time.Friday] = DaySchedule{IsOpen: true, Open: "12:30", Close: "16:00"}
	w[time.Saturday] = DaySchedule{IsOpen: false}
	return w
}
