package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/CWS-BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования.
// Чистое чтение: сетка из недельного расписания, из неё вычитаются
// блокировки и занятые слоты. Решение о доступности принимает
// domain.AvailableTimes — тот же предикат, которым usecase создания
// бронирования перепроверяет слот в транзакции.
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	schedule        domain.WeekSchedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	schedule domain.WeekSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Сетка слотов на день недели; для выходного дня — пустая
	slots := uc.schedule.SlotsFor(req.Date)
	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: slots}, nil
	}

	blocks, err := uc.blockRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	available := domain.AvailableTimes(slots, appointments, blocks)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s",
		len(available), len(slots), req.Date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: available}, nil
}
