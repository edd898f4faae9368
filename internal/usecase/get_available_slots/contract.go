package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Block, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
