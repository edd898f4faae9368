package login_customer

import (
	"github.com/m04kA/CWS-BookingService/internal/service/customers/models"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Phone string `json:"phone"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *LoginRequest) ToServiceRequest() *models.LoginRequest {
	return &models.LoginRequest{Phone: r.Phone}
}
