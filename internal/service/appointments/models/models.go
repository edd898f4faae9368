package models

import (
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	CallerID int64  // клиент, выполняющий запрос (из X-User-ID)
	Status   string // запрошенный статус: completed | cancelled
}

// ListAppointmentsRequest запрос на получение списка бронирований
type ListAppointmentsRequest struct {
	CallerID   int64      // клиент, выполняющий запрос
	Date       *time.Time // фильтр по дате (опционально)
	CustomerID *int64     // фильтр по клиенту (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		Date:       r.Date,
		CustomerID: r.CustomerID,
	}
}

// Response модели

// AppointmentResponse ответ с данными бронирования
type AppointmentResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	ServiceID   string `json:"serviceId"`
	Date        string `json:"date"`      // "2024-06-10"
	StartTime   string `json:"startTime"` // "19:00"
	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`
	Price       int64  `json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком бронирований
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		ServiceID:   a.ServiceID,
		Date:        a.Date.Format(domain.DateFormat),
		StartTime:   a.StartTime.String(),
		Status:      string(a.Status),
		ServiceName: a.ServiceName,
		Price:       a.Price,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	list := make([]AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		list = append(list, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: list}
}
