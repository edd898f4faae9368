package register_customer

import (
	"github.com/m04kA/CWS-BookingService/internal/service/customers/models"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Phone: r.Phone,
		Name:  r.Name,
	}
}
