package list_blocks

import (
	"context"

	"github.com/m04kA/CWS-BookingService/internal/service/blocks/models"
)

type BlockService interface {
	List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
