package customers

import (
	"context"
	"log/slog"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/kafka"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/Domenick1991/travelagency/internal/observability/metrics"
	"github.com/Domenick1991/travelagency/internal/repository"
)

type CustomerUseCase interface {
	List(ctx context.Context, search string) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
}

type Cache interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	SetCustomer(ctx context.Context, customer *domain.Customer) error
}

type Producer interface {
	Publish(ctx context.Context, event kafka.AgencyEvent) error
}

type CreateCustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

type CustomerService struct {
	repo     repository.CustomerRepository
	cache    Cache
	producer Producer
	now      func() time.Time
}

type CustomerServiceOption func(*CustomerService)

// WithCache enables read-through caching of single customers.
func WithCache(cache Cache) CustomerServiceOption {
	return func(s *CustomerService) {
		s.cache = cache
	}
}

// WithProducer publishes a customer_created event after every insert.
func WithProducer(producer Producer) CustomerServiceOption {
	return func(s *CustomerService) {
		s.producer = producer
	}
}

func NewCustomerService(repo repository.CustomerRepository, opts ...CustomerServiceOption) *CustomerService {
	service := &CustomerService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *CustomerService) List(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.repo.List(ctx, search)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	log := logger.FromContext(ctx)

	if s.cache != nil {
		cached, err := s.cache.GetCustomer(ctx, id)
		if err != nil {
			log.WarnContext(ctx, "customer cache read failed", slog.Int64("customer_id", id), slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCustomer(ctx, customer); err != nil {
			log.WarnContext(ctx, "customer cache write failed", slog.Int64("customer_id", id), slog.String("error", err.Error()))
		}
	}
	return customer, nil
}

// Create checks the email up front for a friendly error; a concurrent insert
// of the same email is still caught by the repository as a conflict.
func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	taken, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("Customer with this email already exists")
	}

	customer := &domain.Customer{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	metrics.RecordCustomerCreated()
	if s.producer != nil {
		if err := s.producer.Publish(ctx, kafka.CustomerCreated(*customer, s.now())); err != nil {
			logger.FromContext(ctx).WarnContext(ctx, "failed to publish customer_created",
				slog.Int64("customer_id", customer.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return customer, nil
}

var _ CustomerUseCase = (*CustomerService)(nil)
