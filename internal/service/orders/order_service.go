package orders

import (
	"context"
	"log/slog"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/kafka"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/Domenick1991/travelagency/internal/observability/metrics"
	"github.com/Domenick1991/travelagency/internal/repository"
	"github.com/shopspring/decimal"
)

type OrderUseCase interface {
	ListAll(ctx context.Context) ([]domain.OrderWithCustomer, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	Revenue(ctx context.Context, customerID int64) (decimal.Decimal, error)
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
}

// Cache stores revenue per customer and generation. InvalidateRevenue must
// advance the generation returned by RevenueGeneration.
type Cache interface {
	RevenueGeneration(ctx context.Context, customerID int64) (int64, error)
	GetRevenue(ctx context.Context, customerID, generation int64) (decimal.Decimal, bool, error)
	SetRevenue(ctx context.Context, customerID, generation int64, total decimal.Decimal) error
	InvalidateRevenue(ctx context.Context, customerID int64) error
}

type Producer interface {
	Publish(ctx context.Context, event kafka.AgencyEvent) error
}

type CreateOrderInput struct {
	CustomerID      int64
	DepartureCity   string
	DestinationCity string
	TravelDate      time.Time
	FlightPrice     decimal.Decimal
}

type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	cache     Cache
	producer  Producer
	now       func() time.Time
}

type OrderServiceOption func(*OrderService)

// WithCache enables caching of per-customer revenue.
func WithCache(cache Cache) OrderServiceOption {
	return func(s *OrderService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
	}
}

func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, opts ...OrderServiceOption) *OrderService {
	service := &OrderService{orders: orders, customers: customers, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.OrderWithCustomer, error) {
	return s.orders.ListWithCustomer(ctx)
}

// ListByCustomer returns an empty list for a customer that does not exist.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// Revenue is the sum of the customer's flight prices, zero when there are
// no orders or no such customer.
//
// The generation is read before the sum. An order booked in between bumps
// it, so the fill below goes to a generation later reads ignore.
func (s *OrderService) Revenue(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	useCache := s.cache != nil
	var generation int64
	if useCache {
		gen, err := s.cache.RevenueGeneration(ctx, customerID)
		if err != nil {
			log.WarnContext(ctx, "revenue cache read failed", slog.Int64("customer_id", customerID), slog.String("error", err.Error()))
			useCache = false
		}
		generation = gen
	}

	if useCache {
		total, ok, err := s.cache.GetRevenue(ctx, customerID, generation)
		if err != nil {
			log.WarnContext(ctx, "revenue cache read failed", slog.Int64("customer_id", customerID), slog.String("error", err.Error()))
		} else if ok {
			return total, nil
		}
	}

	total, err := s.orders.SumRevenueByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	if useCache {
		if err := s.cache.SetRevenue(ctx, customerID, generation, total); err != nil {
			log.WarnContext(ctx, "revenue cache write failed", slog.Int64("customer_id", customerID), slog.String("error", err.Error()))
		}
	}
	return total, nil
}

func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	log := logger.FromContext(ctx)

	exists, err := s.customers.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFound("Customer not found")
	}

	order := &domain.Order{
		CustomerID:      input.CustomerID,
		DepartureCity:   input.DepartureCity,
		DestinationCity: input.DestinationCity,
		TravelDate:      input.TravelDate,
		FlightPrice:     input.FlightPrice,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRevenue(ctx, order.CustomerID); err != nil {
			log.WarnContext(ctx, "revenue cache invalidation failed", slog.Int64("customer_id", order.CustomerID), slog.String("error", err.Error()))
		}
	}

	metrics.RecordOrderBooked(order.FlightPrice)
	if s.producer != nil {
		if err := s.producer.Publish(ctx, kafka.OrderBooked(*order, s.now())); err != nil {
			log.WarnContext(ctx, "failed to publish order_booked",
				slog.Int64("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return order, nil
}

var _ OrderUseCase = (*OrderService)(nil)
