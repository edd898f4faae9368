package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/CWS-BookingService/internal/service/customers/models"
)

// Телефон: 7-15 цифр, опциональный ведущий "+"
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Service сервис для работы с клиентами: регистрация, вход по телефону
// и профиль с состоянием лояльности
type Service struct {
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Register регистрирует нового клиента. Номер телефона уникален.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Register: phone=%s", req.Phone)

	if err := validateRegister(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	customer := &domain.Customer{
		Phone: req.Phone,
		Name:  req.Name,
		Role:  domain.RoleCustomer,
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, customerRepo.ErrPhoneTaken) {
			s.logger.Warn("Register: phone=%s already registered", req.Phone)
			return nil, ErrPhoneTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: customer id=%d created", created.ID)
	return models.FromDomainCustomer(created), nil
}

// Login выполняет вход по номеру телефона
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Login: phone=%s", req.Phone)

	if req.Phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	customer, err := s.customerRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Login: phone=%s not registered", req.Phone)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Login: customer id=%d logged in", customer.ID)
	return models.FromDomainCustomer(customer), nil
}

// GetByID получает профиль клиента вместе с состоянием лояльности.
// Клиент видит только свой профиль; оператор — любой.
func (s *Service) GetByID(ctx context.Context, req *models.GetCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("GetCustomer: customer id=%d by user=%d", req.CustomerID, req.CallerID)

	if req.CallerID != req.CustomerID {
		caller, err := s.customerRepo.GetByID(ctx, req.CallerID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				s.logger.Warn("GetCustomer: caller id=%d not found", req.CallerID)
				return nil, ErrAccessDenied
			}
			s.logger.Error("GetCustomer: repository error for caller id=%d: %v", req.CallerID, err)
			return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}
		if !caller.IsAdmin() {
			s.logger.Warn("GetCustomer: access denied for user=%d", req.CallerID)
			return nil, ErrAccessDenied
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetCustomer: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomer: repository error for customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer), nil
}

func validateRegister(req *models.RegisterRequest) error {
	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if !phonePattern.MatchString(req.Phone) {
		return fmt.Errorf("%w: invalid phone format", ErrInvalidInput)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}
