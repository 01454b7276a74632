package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/travelagency/config"
	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type RedisCache struct {
	client      *redis.Client
	customerTTL time.Duration
	revenueTTL  time.Duration
}

func NewRedisCache(cfg config.RedisConfig, customerTTL, revenueTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		customerTTL: customerTTL,
		revenueTTL:  revenueTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetCustomer returns nil without error on a cache miss.
func (c *RedisCache) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	data, err := c.client.Get(ctx, customerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var customer domain.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *RedisCache) SetCustomer(ctx context.Context, customer *domain.Customer) error {
	payload, err := json.Marshal(customer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, customerKey(customer.ID), payload, c.customerTTL).Err()
}

// RevenueGeneration returns the customer's current revenue generation, zero
// before the first invalidation. Cached totals are keyed by generation, so a
// fill computed before an invalidation lands on a key nobody reads again.
func (c *RedisCache) RevenueGeneration(ctx context.Context, customerID int64) (int64, error) {
	gen, err := c.client.Get(ctx, revenueGenerationKey(customerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

// GetRevenue reports ok=false on a cache miss.
func (c *RedisCache) GetRevenue(ctx context.Context, customerID, generation int64) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, revenueKey(customerID, generation)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}

	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("decode cached revenue: %w", err)
	}
	return total, true, nil
}

func (c *RedisCache) SetRevenue(ctx context.Context, customerID, generation int64, total decimal.Decimal) error {
	return c.client.Set(ctx, revenueKey(customerID, generation), total.String(), c.revenueTTL).Err()
}

// InvalidateRevenue bumps the generation. Entries of older generations
// expire on their own.
func (c *RedisCache) InvalidateRevenue(ctx context.Context, customerID int64) error {
	return c.client.Incr(ctx, revenueGenerationKey(customerID)).Err()
}

func customerKey(id int64) string {
	return fmt.Sprintf("cache:customer:%d", id)
}

func revenueKey(customerID, generation int64) string {
	return fmt.Sprintf("cache:revenue:customer:%d:%d", customerID, generation)
}

func revenueGenerationKey(customerID int64) string {
	return fmt.Sprintf("cache:revenue:gen:customer:%d", customerID)
}
