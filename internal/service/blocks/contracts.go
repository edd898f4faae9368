package blocks

import (
	"context"
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, blk *domain.Block) (*domain.Block, error)
	Delete(ctx context.Context, id int64) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Block, error)
	ListAll(ctx context.Context) ([]*domain.Block, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
