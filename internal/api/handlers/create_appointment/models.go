package create_appointment

import (
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	createAppointment "github.com/m04kA/CWS-BookingService/internal/usecase/create_appointment"
	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID string `json:"serviceId"` // "external" | "internal" | "full"
	Date      string `json:"date"`      // "2024-06-10"
	StartTime string `json:"startTime"` // "19:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	ServiceID   string `json:"serviceId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`
	Price       int64  `json:"price"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		CustomerID:  resp.CustomerID,
		ServiceID:   resp.ServiceID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		ServiceName: resp.ServiceName,
		Price:       resp.Price,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
