package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	"github.com/m04kA/CWS-BookingService/pkg/types"
)

var (
	testDate     = time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC) // среда
	saturdayDate = time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (r *stubAppointmentRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range r.appointments {
		if a.Date.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

type stubBlockRepo struct {
	blocks []*domain.Block
}

func (r *stubBlockRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Block, error) {
	result := make([]*domain.Block, 0)
	for _, b := range r.blocks {
		if b.Date.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func newTestUseCase(appts *stubAppointmentRepo, blocks *stubBlockRepo) *UseCase {
	return NewUseCase(appts, blocks, domain.DefaultWeekSchedule(), noopLogger{})
}

func TestUseCase_Execute_FullGrid(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"18:00", "18:30", "19:00", "19:30", "20:00", "20:30"}, resp.Slots)
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Date: saturdayDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_OccupiedAndBlocked(t *testing.T) {
	at := types.TimeString("20:00")
	appts := &stubAppointmentRepo{appointments: []*domain.Appointment{
		{Date: testDate, StartTime: "18:30", Status: domain.StatusPending},
		{Date: testDate, StartTime: "19:00", Status: domain.StatusCancelled},
	}}
	blocks := &stubBlockRepo{blocks: []*domain.Block{{Date: testDate, Time: &at}}}

	uc := newTestUseCase(appts, blocks)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	// 18:30 занят, 20:00 заблокирован, отмененный 19:00 свободен
	assert.Equal(t, []types.TimeString{"18:00", "19:00", "19:30", "20:30"}, resp.Slots)
}

func TestUseCase_Execute_WholeDayBlock(t *testing.T) {
	blocks := &stubBlockRepo{blocks: []*domain.Block{{Date: testDate}}}
	uc := newTestUseCase(&stubAppointmentRepo{}, blocks)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

// Снятие блокировки возвращает слоты в выдачу
func TestUseCase_Execute_BlockRemovalRestoresSlots(t *testing.T) {
	blocks := &stubBlockRepo{blocks: []*domain.Block{{ID: 1, Date: testDate}}}
	uc := newTestUseCase(&stubAppointmentRepo{}, blocks)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)
	require.Empty(t, resp.Slots)

	blocks.blocks = nil

	resp, err = uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 6)
}

func TestUseCase_Execute_ZeroDate(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockRepo{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
