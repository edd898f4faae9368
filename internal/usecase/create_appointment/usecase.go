package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	apptRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
)

// UseCase use case для создания бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	customerRepo    CustomerRepository
	txManager       TransactionManager
	schedule        domain.WeekSchedule
	catalog         domain.ServiceCatalog
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	schedule domain.WeekSchedule,
	catalog domain.ServiceCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		schedule:        schedule,
		catalog:         catalog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: дневной снимок читается с блокировкой FOR UPDATE, после
// чего слот перепроверяется тем же предикатом, что отдаёт список
// доступных слотов. Два конкурентных вызова на один слот не могут
// пройти оба — проигравший получает ErrSlotTaken либо от перепроверки,
// либо от частичного уникального индекса в хранилище.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, service=%s, date=%s, time=%s",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Услуга из каталога (цена фиксируется отсюда)
	service, ok := uc.catalog.ByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateAppointment: service %q not found in catalog", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Время должно попадать в сетку слотов этого дня недели.
	// Сетка — чистая функция конфигурации, проверяем до транзакции.
	slots := uc.schedule.SlotsFor(req.Date)
	if !uc.schedule.ContainsSlot(req.Date, req.StartTime) {
		uc.logger.Warn("CreateAppointment: time %s is not on the slot grid for %s",
			req.StartTime, req.Date.Format(domain.DateFormat))
		return nil, ErrSlotClosed
	}

	// 5. Клиент должен существовать
	if _, err := uc.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 6. Проверка доступности + вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Блокировки на дату (FOR UPDATE внутри транзакции)
		blocks, err := uc.blockRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list blocks: %v", err)
			return fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
		}

		// 6.2. Бронирования на дату (FOR UPDATE внутри транзакции)
		appointments, err := uc.appointmentRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 6.3. Точечная перепроверка тем же предикатом, что и выдача слотов
		if !domain.IsTimeAvailable(req.StartTime, slots, appointments, blocks) {
			uc.logger.Warn("CreateAppointment: slot %s %s is not available",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotTaken
		}

		// 6.4. Создаем бронирование в статусе pending с зафиксированной ценой
		appt := &domain.Appointment{
			CustomerID:  req.CustomerID,
			ServiceID:   service.ID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			Status:      domain.StatusPending,
			ServiceName: service.Name,
			Price:       service.Price,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				// Уникальный индекс отклонил вставку: гонка проиграна
				uc.logger.Warn("CreateAppointment: lost slot race for %s %s",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		CustomerID:  result.CustomerID,
		ServiceID:   result.ServiceID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		Status:      string(result.Status),
		ServiceName: result.ServiceName,
		Price:       result.Price,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
