package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	"github.com/m04kA/CWS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CWS-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// Repository репозиторий для работы с блокировками слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку. startTime == nil блокирует весь день.
func (r *Repository) Create(ctx context.Context, blk *domain.Block) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("block_date", "start_time").
		Values(blk.Date, blk.Time).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blk.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	blk.CreatedAt = createdAt.Time

	return blk, nil
}

// Delete удаляет блокировку по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// ListByDate получает блокировки на дату.
// Внутри транзакции добавляет FOR UPDATE, чтобы создание бронирования
// видело согласованный набор блокировок на момент коммита.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "block_date", "start_time", "created_at").
		From("blocked_slots").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("start_time ASC NULLS FIRST")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// ListAll получает все блокировки, упорядоченные по дате и времени
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "block_date", "start_time", "created_at").
		From("blocked_slots").
		OrderBy("block_date ASC, start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlocks(rows *sql.Rows) ([]*domain.Block, error) {
	blocks := make([]*domain.Block, 0)

	for rows.Next() {
		var blk domain.Block
		var startTime sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&blk.ID, &blk.Date, &startTime, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			ts := types.TimeString(startTime.String)
			blk.Time = &ts
		}
		blk.CreatedAt = createdAt.Time

		blocks = append(blocks, &blk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
