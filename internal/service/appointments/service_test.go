package appointments

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
	"github.com/m04kA/CWS-BookingService/internal/service/appointments/models"
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

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[int64]*domain.Appointment
}

func newFakeAppointmentRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	r := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		copied := *a
		r.appointments[a.ID] = &copied
	}
	return r
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.appointments {
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		if filter.CustomerID != nil && a.CustomerID != *filter.CustomerID {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) UpdateStatusFrom(ctx context.Context, id int64, prior, next domain.AppointmentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok || a.Status != prior {
		return false, nil
	}
	a.Status = next
	return true, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[int64]*domain.Customer
	stamps    map[int64]int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: map[int64]*domain.Customer{
			adminID:    {ID: adminID, Phone: "0500000000", Name: "Operator", Role: domain.RoleAdmin},
			customerID: {ID: customerID, Phone: "0501234567", Name: "Client", Role: domain.RoleCustomer},
		},
		stamps: make(map[int64]int),
	}
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) IncrementLoyaltyStamps(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return customerRepo.ErrCustomerNotFound
	}
	r.stamps[id]++
	return nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func testCatalog() domain.ServiceCatalog {
	return domain.ServiceCatalog{
		{ID: "external", Name: "External wash", Price: 45, DurationMinutes: 20},
		{ID: "full", Name: "Full wash", Price: 70, DurationMinutes: 45, LoyaltyEligible: true},
	}
}

func pendingAppointment(id int64, serviceID string) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		CustomerID: customerID,
		ServiceID:  serviceID,
		Date:       testDate,
		StartTime:  "19:00",
		Status:     domain.StatusPending,
	}
}

func newTestService(appts *fakeAppointmentRepo, customers *fakeCustomerRepo) *Service {
	return NewService(appts, customers, &fakeTxManager{}, testCatalog(), noopLogger{})
}

func TestService_UpdateStatus_CompleteAwardsStamp(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	customers := newFakeCustomerRepo()
	svc := newTestService(appts, customers)

	err := svc.UpdateStatus(context.Background(), 10,
		&models.UpdateStatusRequest{CallerID: adminID, Status: "completed"})
	require.NoError(t, err)

	updated, err := appts.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, 1, customers.stamps[customerID])
}

func TestService_UpdateStatus_NonEligibleServiceNoStamp(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "external"))
	customers := newFakeCustomerRepo()
	svc := newTestService(appts, customers)

	err := svc.UpdateStatus(context.Background(), 10,
		&models.UpdateStatusRequest{CallerID: adminID, Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, 0, customers.stamps[customerID])
}

func TestService_UpdateStatus_CancelNoStamp(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	customers := newFakeCustomerRepo()
	svc := newTestService(appts, customers)

	err := svc.UpdateStatus(context.Background(), 10,
		&models.UpdateStatusRequest{CallerID: adminID, Status: "cancelled"})
	require.NoError(t, err)

	updated, err := appts.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, 0, customers.stamps[customerID])
}

// Повторный "completed" — no-op: статус не меняется, второй штамп
// не начисляется
func TestService_UpdateStatus_RepeatedCompleteIsNoop(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	customers := newFakeCustomerRepo()
	svc := newTestService(appts, customers)

	req := &models.UpdateStatusRequest{CallerID: adminID, Status: "completed"}
	require.NoError(t, svc.UpdateStatus(context.Background(), 10, req))
	require.NoError(t, svc.UpdateStatus(context.Background(), 10, req))
	require.NoError(t, svc.UpdateStatus(context.Background(), 10, req))

	assert.Equal(t, 1, customers.stamps[customerID])
}

// Терминальные статусы не переходят ни во что: completed → cancelled
// и cancelled → completed поглощаются как успешные no-op
func TestService_UpdateStatus_TerminalStatusesAreFrozen(t *testing.T) {
	tests := []struct {
		name      string
		initial   domain.AppointmentStatus
		requested string
	}{
		{name: "completed to cancelled", initial: domain.StatusCompleted, requested: "cancelled"},
		{name: "cancelled to completed", initial: domain.StatusCancelled, requested: "completed"},
		{name: "completed to pending", initial: domain.StatusCompleted, requested: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := pendingAppointment(10, "full")
			appt.Status = tt.initial
			appts := newFakeAppointmentRepo(appt)
			customers := newFakeCustomerRepo()
			svc := newTestService(appts, customers)

			err := svc.UpdateStatus(context.Background(), 10,
				&models.UpdateStatusRequest{CallerID: adminID, Status: tt.requested})
			require.NoError(t, err)

			current, err := appts.GetByID(context.Background(), 10)
			require.NoError(t, err)
			assert.Equal(t, tt.initial, current.Status)
			assert.Equal(t, 0, customers.stamps[customerID])
		})
	}
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(newFakeAppointmentRepo(), newFakeCustomerRepo())

	err := svc.UpdateStatus(context.Background(), 404,
		&models.UpdateStatusRequest{CallerID: adminID, Status: "completed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_UpdateStatus_NonAdminDenied(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	svc := newTestService(appts, newFakeCustomerRepo())

	err := svc.UpdateStatus(context.Background(), 10,
		&models.UpdateStatusRequest{CallerID: customerID, Status: "completed"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	current, getErr := appts.GetByID(context.Background(), 10)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusPending, current.Status)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	svc := newTestService(appts, newFakeCustomerRepo())

	err := svc.UpdateStatus(context.Background(), 10,
		&models.UpdateStatusRequest{CallerID: adminID, Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List_AdminSeesAll(t *testing.T) {
	appts := newFakeAppointmentRepo(
		pendingAppointment(10, "full"),
		pendingAppointment(11, "external"),
	)
	svc := newTestService(appts, newFakeCustomerRepo())

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{CallerID: adminID})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}

func TestService_List_CustomerSeesOwnOnly(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	svc := newTestService(appts, newFakeCustomerRepo())

	own := customerID
	resp, err := svc.List(context.Background(),
		&models.ListAppointmentsRequest{CallerID: customerID, CustomerID: &own})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
}

func TestService_List_CustomerCannotSeeOthers(t *testing.T) {
	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"))
	svc := newTestService(appts, newFakeCustomerRepo())

	// Без фильтра по себе
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{CallerID: customerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// С фильтром по чужому ID
	other := adminID
	_, err = svc.List(context.Background(),
		&models.ListAppointmentsRequest{CallerID: customerID, CustomerID: &other})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_List_DateFilter(t *testing.T) {
	other := pendingAppointment(11, "external")
	other.Date = testDate.AddDate(0, 0, 1)

	appts := newFakeAppointmentRepo(pendingAppointment(10, "full"), other)
	svc := newTestService(appts, newFakeCustomerRepo())

	resp, err := svc.List(context.Background(),
		&models.ListAppointmentsRequest{CallerID: adminID, Date: &testDate})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(10), resp.Appointments[0].ID)
}
