package blocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	blockRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/block"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks/models"
	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// Service сервис для управления блокировками слотов.
// Все операции доступны только оператору (admin).
//
// Блокировка влияет только на выдачу доступных слотов и новые
// бронирования. Существующие бронирования на заблокированное время
// остаются в своих статусах, оператор отменяет их отдельно.
type Service struct {
	blockRepo    BlockRepository
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockRepository, customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		blockRepo:    blockRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create создает блокировку слота. Time == nil блокирует весь день.
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: date=%s, time=%v by user=%d",
		req.Date.Format(domain.DateFormat), req.Time, req.CallerID)

	if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	blk := &domain.Block{Date: req.Date}

	if req.Time != nil {
		ts, err := types.NewTimeStringFromString(*req.Time)
		if err != nil {
			s.logger.Warn("CreateBlock: invalid time=%s: %v", *req.Time, err)
			return nil, fmt.Errorf("%w: invalid time format, expected HH:MM", ErrInvalidInput)
		}
		blk.Time = &ts
	}

	created, err := s.blockRepo.Create(ctx, blk)
	if err != nil {
		s.logger.Error("CreateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: block id=%d created", created.ID)
	return models.FromDomainBlock(created), nil
}

// Delete снимает блокировку по ID
func (s *Service) Delete(ctx context.Context, req *models.DeleteBlockRequest) error {
	s.logger.Info("DeleteBlock: block id=%d by user=%d", req.BlockID, req.CallerID)

	if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
		return err
	}

	if err := s.blockRepo.Delete(ctx, req.BlockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found", req.BlockID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", req.BlockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: block id=%d deleted", req.BlockID)
	return nil
}

// List получает блокировки: все или на указанную дату
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("ListBlocks: caller=%d, date=%v", req.CallerID, req.Date)

	if err := s.checkAdminAccess(ctx, req.CallerID); err != nil {
		return nil, err
	}

	var (
		blocks []*domain.Block
		err    error
	)
	if req.Date != nil {
		blocks, err = s.blockRepo.ListByDate(ctx, *req.Date)
	} else {
		blocks, err = s.blockRepo.ListAll(ctx)
	}
	if err != nil {
		s.logger.Error("ListBlocks: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlocks: fetched %d blocks", len(blocks))
	return models.FromDomainBlockList(blocks), nil
}

// checkAdminAccess проверяет, что пользователь является оператором мойки
func (s *Service) checkAdminAccess(ctx context.Context, callerID int64) error {
	caller, err := s.customerRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("checkAdminAccess: customer id=%d not found", callerID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAdminAccess: repository error for customer id=%d: %v", callerID, err)
		return fmt.Errorf("%w: checkAdminAccess - repository error: %v", ErrInternal, err)
	}
	if !caller.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%d is not an operator", callerID)
		return ErrAccessDenied
	}
	return nil
}
