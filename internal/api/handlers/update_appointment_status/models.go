package update_appointment_status

import (
	"github.com/m04kA/CWS-BookingService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "completed" | "cancelled"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(callerID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		CallerID: callerID,
		Status:   r.Status,
	}
}
