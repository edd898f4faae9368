package get_customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-BookingService/internal/api/handlers"
	"github.com/m04kA/CWS-BookingService/internal/api/middleware"
	"github.com/m04kA/CWS-BookingService/internal/service/customers"
	"github.com/m04kA/CWS-BookingService/internal/service/customers/models"
)

const (
	msgUnauthorized      = "требуется аутентификация"
	msgInvalidCustomerID = "некорректный ID клиента"
	msgNotFound          = "клиент не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id} - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	serviceReq := &models.GetCustomerRequest{
		CallerID:   callerID,
		CustomerID: customerID,
	}

	result, err := h.service.GetByID(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrCustomerNotFound):
			h.logger.Warn("GET /customers/{id} - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, customers.ErrAccessDenied):
			h.logger.Warn("GET /customers/{id} - Access denied: customer_id=%d, user_id=%d",
				customerID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /customers/{id} - Failed to get customer: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id} - Customer retrieved successfully: customer_id=%d, user_id=%d",
		customerID, callerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
