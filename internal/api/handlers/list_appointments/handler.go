package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/CWS-BookingService/internal/api/handlers"
	"github.com/m04kA/CWS-BookingService/internal/api/middleware"
	"github.com/m04kA/CWS-BookingService/internal/domain"
	"github.com/m04kA/CWS-BookingService/internal/service/appointments"
	"github.com/m04kA/CWS-BookingService/internal/service/appointments/models"
)

const (
	msgUnauthorized      = "требуется аутентификация"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCustomerID = "некорректный ID клиента"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: date (optional, YYYY-MM-DD), customerId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceReq := &models.ListAppointmentsRequest{CallerID: callerID}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.Date = &date
	}

	if customerIDStr := r.URL.Query().Get("customerId"); customerIDStr != "" {
		customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid customer ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)
			return
		}
		serviceReq.CustomerID = &customerID
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments - Access denied: user_id=%d", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user_id=%d, error=%v",
				callerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		callerID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
