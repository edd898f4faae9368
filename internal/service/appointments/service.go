package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	apptRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/CWS-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с бронированиями: переходы статусов и списки
type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	txManager       TransactionManager
	catalog         domain.ServiceCatalog
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	catalog domain.ServiceCatalog,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		catalog:         catalog,
		logger:          logger,
	}
}

// UpdateStatus применяет переход статуса бронирования.
// Доступно только оператору (admin).
//
// Машина статусов односторонняя: pending → completed и
// pending → cancelled. Любой другой запрошенный переход — успешный
// no-op: статус не меняется и эффекты лояльности не срабатывают.
// Проверка перехода и запись выполняются в одной транзакции против
// зафиксированного (FOR UPDATE) статуса, поэтому повторный запрос
// "completed" не может начислить второй штамп.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.CallerID)

	if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
		return err
	}

	newStatus, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Статус читается с блокировкой строки: решение о переходе
		// принимается против сохранённого состояния, не устаревшего чтения
		appt, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !appt.Status.CanTransitionTo(newStatus) {
			// Недопустимый переход — no-op, который считается успехом
			s.logger.Info("UpdateStatus: appointment id=%d already %s, ignoring transition to %s",
				appointmentID, appt.Status, newStatus)
			return nil
		}

		updated, err := s.appointmentRepo.UpdateStatusFrom(txCtx, appointmentID, appt.Status, newStatus)
		if err != nil {
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		if !updated {
			// Статус успел измениться между чтением и записью — no-op
			s.logger.Info("UpdateStatus: appointment id=%d changed concurrently, ignoring", appointmentID)
			return nil
		}

		// Штамп лояльности начисляется ровно один раз: только на
		// фактическом переходе pending → completed квалифицирующей услуги
		if newStatus == domain.StatusCompleted {
			if err := s.awardLoyaltyStamp(txCtx, appt); err != nil {
				return err
			}
		}

		s.logger.Info("UpdateStatus: appointment id=%d transitioned %s -> %s",
			appointmentID, appt.Status, newStatus)
		return nil
	})
}

// awardLoyaltyStamp начисляет штамп за завершённую квалифицирующую услугу
func (s *Service) awardLoyaltyStamp(ctx context.Context, appt *domain.Appointment) error {
	service, ok := s.catalog.ByID(appt.ServiceID)
	if !ok || !service.LoyaltyEligible {
		return nil
	}

	if err := s.customerRepo.IncrementLoyaltyStamps(ctx, appt.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("UpdateStatus: customer id=%d not found for loyalty stamp", appt.CustomerID)
			return nil
		}
		s.logger.Error("UpdateStatus: failed to increment loyalty for customer id=%d: %v",
			appt.CustomerID, err)
		return fmt.Errorf("%w: failed to increment loyalty: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: loyalty stamp awarded to customer id=%d for appointment id=%d",
		appt.CustomerID, appt.ID)
	return nil
}

// List получает бронирования по фильтру, упорядоченные по (дата, время).
// Клиент видит только свои бронирования; оператор — любые.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListAppointments: caller=%d, date=%v, customer=%v", req.CallerID, req.Date, req.CustomerID)

	caller, err := s.getCaller(ctx, req.CallerID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		// Не-оператор может запрашивать только собственную историю
		if req.CustomerID == nil || *req.CustomerID != caller.ID {
			s.logger.Warn("ListAppointments: access denied for user=%d", req.CallerID)
			return nil, ErrAccessDenied
		}
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAppointments: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// getCaller получает клиента, выполняющего запрос
func (s *Service) getCaller(ctx context.Context, callerID int64) (*domain.Customer, error) {
	caller, err := s.customerRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("getCaller: customer id=%d not found", callerID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("getCaller: repository error for customer id=%d: %v", callerID, err)
		return nil, fmt.Errorf("%w: getCaller - repository error: %v", ErrInternal, err)
	}
	return caller, nil
}

// checkAdminAccess проверяет, что пользователь является оператором мойки
func (s *Service) checkAdminAccess(ctx context.Context, callerID int64) error {
	caller, err := s.getCaller(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%d is not an operator", callerID)
		return ErrAccessDenied
	}
	return nil
}
