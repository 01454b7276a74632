package customers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context, search string) ([]domain.Customer, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCache) SetCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, event kafka.AgencyEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestCustomerService_List(t *testing.T) {
	repo := &MockCustomerRepository{}
	service := NewCustomerService(repo)
	ctx := context.Background()

	want := []domain.Customer{{ID: 1, FirstName: "Alice"}}
	repo.On("List", ctx, "ali").Return(want, nil).Once()

	got, err := service.List(ctx, "ali")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestCustomerService_Get_CacheHit(t *testing.T) {
	repo := &MockCustomerRepository{}
	cache := &MockCache{}
	service := NewCustomerService(repo, WithCache(cache))
	ctx := context.Background()

	cache.On("GetCustomer", ctx, int64(5)).Return(&domain.Customer{ID: 5, FirstName: "Cached"}, nil).Once()

	got, err := service.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.FirstName)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCustomerService_Get_CacheMissFillsCache(t *testing.T) {
	repo := &MockCustomerRepository{}
	cache := &MockCache{}
	service := NewCustomerService(repo, WithCache(cache))
	ctx := context.Background()

	stored := &domain.Customer{ID: 5, FirstName: "Alice"}
	cache.On("GetCustomer", ctx, int64(5)).Return(nil, nil).Once()
	repo.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
	cache.On("SetCustomer", ctx, stored).Return(nil).Once()

	got, err := service.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCustomerService_Get_CacheErrorFallsThrough(t *testing.T) {
	repo := &MockCustomerRepository{}
	cache := &MockCache{}
	service := NewCustomerService(repo, WithCache(cache))
	ctx := context.Background()

	stored := &domain.Customer{ID: 5}
	cache.On("GetCustomer", ctx, int64(5)).Return(nil, errors.New("redis down")).Once()
	repo.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
	cache.On("SetCustomer", ctx, stored).Return(errors.New("redis down")).Once()

	got, err := service.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestCustomerService_Get_NotFound(t *testing.T) {
	repo := &MockCustomerRepository{}
	service := NewCustomerService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, domain.NotFound("Customer not found")).Once()

	_, err := service.Get(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerService_Create_Success(t *testing.T) {
	repo := &MockCustomerRepository{}
	producer := &MockProducer{}
	service := NewCustomerService(repo, WithProducer(producer))
	service.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	input := CreateCustomerInput{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", PhoneNumber: "+200"}
	repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Customer).ID = 11
	}).Return(nil).Once()
	producer.On("Publish", ctx, mock.MatchedBy(func(e kafka.AgencyEvent) bool {
		return e.Type == kafka.EventCustomerCreated && e.CustomerID == 11 && e.Email == "alice@example.com"
	})).Return(nil).Once()

	customer, err := service.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(11), customer.ID)
	assert.Equal(t, "+200", customer.PhoneNumber)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	repo := &MockCustomerRepository{}
	service := NewCustomerService(repo)
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil).Once()

	_, err := service.Create(ctx, CreateCustomerInput{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Customer with this email already exists")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerService_Create_LostRace(t *testing.T) {
	repo := &MockCustomerRepository{}
	producer := &MockProducer{}
	service := NewCustomerService(repo, WithProducer(producer))
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(domain.Conflict("Customer with this email already exists")).Once()

	_, err := service.Create(ctx, CreateCustomerInput{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCustomerService_Create_PublishFailureIsNotFatal(t *testing.T) {
	repo := &MockCustomerRepository{}
	producer := &MockProducer{}
	service := NewCustomerService(repo, WithProducer(producer))
	ctx := context.Background()

	repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, mock.Anything).Return(errors.New("broker unavailable")).Once()

	_, err := service.Create(ctx, CreateCustomerInput{Email: "alice@example.com"})
	assert.NoError(t, err)
}
