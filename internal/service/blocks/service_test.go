package blocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	blockRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/block"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks/models"
	"github.com/m04kA/CWS-BookingService/pkg/ptr"
)

const (
	adminID    = int64(1)
	customerID = int64(2)
)

var testDate = time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBlockRepo struct {
	nextID int64
	blocks []*domain.Block
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{nextID: 1}
}

func (r *fakeBlockRepo) Create(ctx context.Context, blk *domain.Block) (*domain.Block, error) {
	stored := *blk
	stored.ID = r.nextID
	r.nextID++
	r.blocks = append(r.blocks, &stored)

	result := stored
	return &result, nil
}

func (r *fakeBlockRepo) Delete(ctx context.Context, id int64) error {
	for i, b := range r.blocks {
		if b.ID == id {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return nil
		}
	}
	return blockRepo.ErrBlockNotFound
}

func (r *fakeBlockRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Block, error) {
	result := make([]*domain.Block, 0)
	for _, b := range r.blocks {
		if b.Date.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeBlockRepo) ListAll(ctx context.Context) ([]*domain.Block, error) {
	return r.blocks, nil
}

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	switch id {
	case adminID:
		return &domain.Customer{ID: adminID, Role: domain.RoleAdmin}, nil
	case customerID:
		return &domain.Customer{ID: customerID, Role: domain.RoleCustomer}, nil
	default:
		return nil, customerRepo.ErrCustomerNotFound
	}
}

func newTestService(repo *fakeBlockRepo) *Service {
	return NewService(repo, fakeCustomerRepo{}, noopLogger{})
}

func TestService_Create_SingleSlot(t *testing.T) {
	svc := newTestService(newFakeBlockRepo())

	resp, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		CallerID: adminID,
		Date:     testDate,
		Time:     ptr.Ptr("19:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2030-06-12", resp.Date)
	require.NotNil(t, resp.Time)
	assert.Equal(t, "19:00", *resp.Time)
}

func TestService_Create_WholeDay(t *testing.T) {
	svc := newTestService(newFakeBlockRepo())

	resp, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		CallerID: adminID,
		Date:     testDate,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Time)
}

func TestService_Create_InvalidTime(t *testing.T) {
	svc := newTestService(newFakeBlockRepo())

	_, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		CallerID: adminID,
		Date:     testDate,
		Time:     ptr.Ptr("7pm"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_NonAdminDenied(t *testing.T) {
	repo := newFakeBlockRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		CallerID: customerID,
		Date:     testDate,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.blocks)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeBlockRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		CallerID: adminID,
		Date:     testDate,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), &models.DeleteBlockRequest{
		CallerID: adminID,
		BlockID:  created.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, repo.blocks)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := newTestService(newFakeBlockRepo())

	err := svc.Delete(context.Background(), &models.DeleteBlockRequest{
		CallerID: adminID,
		BlockID:  404,
	})
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestService_List(t *testing.T) {
	repo := newFakeBlockRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), &models.CreateBlockRequest{CallerID: adminID, Date: testDate})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &models.CreateBlockRequest{
		CallerID: adminID,
		Date:     testDate.AddDate(0, 0, 1),
		Time:     ptr.Ptr("12:30"),
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), &models.ListBlocksRequest{CallerID: adminID})
	require.NoError(t, err)
	assert.Len(t, all.Blocks, 2)

	byDate, err := svc.List(context.Background(), &models.ListBlocksRequest{CallerID: adminID, Date: &testDate})
	require.NoError(t, err)
	require.Len(t, byDate.Blocks, 1)
	assert.Nil(t, byDate.Blocks[0].Time)
}

func TestService_List_NonAdminDenied(t *testing.T) {
	svc := newTestService(newFakeBlockRepo())

	_, err := svc.List(context.Background(), &models.ListBlocksRequest{CallerID: customerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
