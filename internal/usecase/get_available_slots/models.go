package get_available_slots

import (
	"time"

	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time          // Дата, на которую запрашивались слоты
	Slots []types.TimeString // Доступные времена начала, по возрастанию
}
