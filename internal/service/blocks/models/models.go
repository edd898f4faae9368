package models

import (
	"time"

	"github.com/m04kA/CWS-BookingService/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на создание блокировки слота.
// Time == nil блокирует весь день.
type CreateBlockRequest struct {
	CallerID int64
	Date     time.Time
	Time     *string // "HH:MM" или nil
}

// DeleteBlockRequest запрос на снятие блокировки
type DeleteBlockRequest struct {
	CallerID int64
	BlockID  int64
}

// ListBlocksRequest запрос на получение списка блокировок
type ListBlocksRequest struct {
	CallerID int64
	Date     *time.Time // фильтр по дате (опционально)
}

// Response модели

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`           // "2024-06-10"
	Time      *string   `json:"time,omitempty"` // nil = весь день
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.Block) *BlockResponse {
	if b == nil {
		return nil
	}

	resp := &BlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		CreatedAt: b.CreatedAt,
	}
	if b.Time != nil {
		t := b.Time.String()
		resp.Time = &t
	}

	return resp
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.Block) *BlockListResponse {
	list := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		list = append(list, *FromDomainBlock(b))
	}
	return &BlockListResponse{Blocks: list}
}
