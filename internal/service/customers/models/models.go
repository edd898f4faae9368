package models

import (
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию клиента по номеру телефона
type RegisterRequest struct {
	Phone string
	Name  string
}

// LoginRequest запрос на вход по номеру телефона
type LoginRequest struct {
	Phone string
}

// GetCustomerRequest запрос на получение профиля клиента
type GetCustomerRequest struct {
	CallerID   int64
	CustomerID int64
}

// Response модели

// CustomerResponse ответ с профилем клиента и состоянием лояльности
type CustomerResponse struct {
	ID      int64           `json:"id"`
	Phone   string          `json:"phone"`
	Name    string          `json:"name"`
	Role    string          `json:"role"`
	Loyalty LoyaltyResponse `json:"loyalty"`

	CreatedAt time.Time `json:"createdAt"`
}

// LoyaltyResponse состояние счётчика лояльности клиента
type LoyaltyResponse struct {
	Stamps           int `json:"stamps"`
	FreeWashes       int `json:"freeWashes"`
	StampsTowardNext int `json:"stampsTowardNext"`
}

// FromDomainCustomer конвертирует domain модель в DTO
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}

	return &CustomerResponse{
		ID:    c.ID,
		Phone: c.Phone,
		Name:  c.Name,
		Role:  string(c.Role),
		Loyalty: LoyaltyResponse{
			Stamps:           c.LoyaltyStamps,
			FreeWashes:       c.FreeWashes(),
			StampsTowardNext: c.StampsTowardNext(),
		},
		CreatedAt: c.CreatedAt,
	}
}
