package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	apptRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// Среда в далёком будущем, чтобы проверка прошедшей даты не мешала
var testDate = time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeAppointmentRepo хранит бронирования в памяти и повторяет
// поведение частичного уникального индекса хранилища
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.Date.Equal(appt.Date) && existing.StartTime == appt.StartTime && existing.OccupiesSlot() {
			return nil, apptRepo.ErrSlotTaken
		}
	}

	stored := *appt
	stored.ID = r.nextID
	r.nextID++
	r.appointments = append(r.appointments, &stored)

	result := stored
	return &result, nil
}

func (r *fakeAppointmentRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.appointments {
		if a.Date.Equal(date) {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeBlockRepo struct {
	mu     sync.Mutex
	blocks []*domain.Block
}

func (r *fakeBlockRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Block, 0)
	for _, b := range r.blocks {
		if b.Date.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		// Тот же сентинел, что возвращает реальное хранилище
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

// fakeTxManager сериализует транзакции мьютексом: два конкурентных
// вызова не видят незакоммиченные изменения друг друга
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func newTestUseCase(appts *fakeAppointmentRepo, blocks *fakeBlockRepo) *UseCase {
	customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
		1: {ID: 1, Phone: "0501234567", Name: "Client", Role: domain.RoleCustomer},
	}}

	return NewUseCase(
		appts,
		blocks,
		customers,
		&fakeTxManager{},
		domain.DefaultWeekSchedule(),
		domain.ServiceCatalog{
			{ID: "external", Name: "External wash", Price: 45, DurationMinutes: 20},
			{ID: "full", Name: "Full wash", Price: 70, DurationMinutes: 45, LoyaltyEligible: true},
		},
		noopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		CustomerID: 1,
		ServiceID:  "external",
		Date:       testDate,
		StartTime:  "19:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(1), resp.CustomerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("19:00"), resp.StartTime)

	// Цена и название зафиксированы из каталога
	assert.Equal(t, "External wash", resp.ServiceName)
	assert.Equal(t, int64(45), resp.Price)
}

func TestUseCase_Execute_SecondReserveFails(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_SlotOutsideGrid(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	tests := []struct {
		name      string
		startTime types.TimeString
	}{
		{name: "off grid by 15 minutes", startTime: "19:15"},
		{name: "before opening", startTime: "17:30"},
		{name: "close boundary", startTime: "21:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.startTime

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrSlotClosed)
		})
	}
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	req := validRequest()
	req.Date = time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC) // суббота

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestUseCase_Execute_BlockedSlot(t *testing.T) {
	at := types.TimeString("19:00")
	blocks := &fakeBlockRepo{blocks: []*domain.Block{{ID: 1, Date: testDate, Time: &at}}}
	uc := newTestUseCase(newFakeAppointmentRepo(), blocks)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_WholeDayBlock(t *testing.T) {
	blocks := &fakeBlockRepo{blocks: []*domain.Block{{ID: 1, Date: testDate}}}
	uc := newTestUseCase(newFakeAppointmentRepo(), blocks)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_DateInPast(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	req := validRequest()
	req.Date = time.Date(2020, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_UnknownService(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	req := validRequest()
	req.ServiceID = "premium"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_UnknownCustomer(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	req := validRequest()
	req.CustomerID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeBlockRepo{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero customer", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "empty service", mutate: func(r *Request) { r.ServiceID = "" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed time", mutate: func(r *Request) { r.StartTime = "7pm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Гонка за один слот: из N конкурентных запросов выигрывает ровно один
func TestUseCase_Execute_ConcurrentReserves(t *testing.T) {
	const workers = 16

	repo := newFakeAppointmentRepo()
	uc := newTestUseCase(repo, &fakeBlockRepo{})

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var succeeded, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotTaken)
			lost++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, lost)

	appts, err := repo.ListByDate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}
