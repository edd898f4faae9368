package register_customer

import (
	"context"

	"github.com/m04kA/CWS-BookingService/internal/service/customers/models"
)

type CustomerService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
