package create_appointment

import (
	"time"

	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	ServiceID  string           // ID услуги из каталога
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "19:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	CustomerID int64
	ServiceID  string
	Date       time.Time
	StartTime  types.TimeString
	Status     string

	// Денормализованные данные услуги (цена зафиксирована на момент бронирования)
	ServiceName string
	Price       int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
