package create_block

import (
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model.
// time == null блокирует весь день.
type CreateBlockRequest struct {
	Date string  `json:"date"`           // "2024-06-10"
	Time *string `json:"time,omitempty"` // "19:00" или null
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(callerID int64) (*models.CreateBlockRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockRequest{
		CallerID: callerID,
		Date:     date,
		Time:     r.Time,
	}, nil
}
