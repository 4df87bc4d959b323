package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/pkg/logger"
)

const testPrefix = "test:"

// newCache starts an in-process Redis and a cache bound to it
func newCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(cache.Options{
		Addr:                 mr.Addr(),
		KeyPrefix:            testPrefix,
		MaxRetriesPerRequest: 1,
		RetryDelay:           10 * time.Millisecond,
		DialTimeout:          time.Second,
		EnableReadyCheck:     true,
		LazyConnect:          true,
		Logger:               logger.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

// MockCache is a mock implementation of cache.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) bool {
	args := m.Called(ctx, key, dest)
	return args.Bool(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockCache) InvalidatePattern(ctx context.Context, pattern string) int64 {
	args := m.Called(ctx, pattern)
	return args.Get(0).(int64)
}

func (m *MockCache) Exists(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockCache) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0)
}

func (m *MockCache) Increment(ctx context.Context, key string, by int64) (int64, bool) {
	args := m.Called(ctx, key, by)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockCache) IncrementWithTTL(ctx context.Context, key string, by int64, ttl time.Duration) (int64, bool) {
	args := m.Called(ctx, key, by, ttl)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockCache) SetHash(ctx context.Context, key, field string, value any) bool {
	args := m.Called(ctx, key, field, value)
	return args.Bool(0)
}

func (m *MockCache) GetHash(ctx context.Context, key, field string, dest any) bool {
	args := m.Called(ctx, key, field, dest)
	return args.Bool(0)
}

func (m *MockCache) FlushAll(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockCache) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserRepository) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockVehicleRepository is a mock implementation of VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// MockPricingRepository is a mock implementation of PricingRepository
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) ListActive(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}

func (m *MockPricingRepository) ReplaceAll(ctx context.Context, rules []domain.PricingRule) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

// MockBlogRepository is a mock implementation of BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) SaveBySlug(ctx context.Context, post *domain.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// MockSystemConfigRepository is a mock implementation of SystemConfigRepository
type MockSystemConfigRepository struct {
	mock.Mock
}

func (m *MockSystemConfigRepository) Load(ctx context.Context) (domain.SystemConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.SystemConfig), args.Error(1)
}

func (m *MockSystemConfigRepository) Upsert(ctx context.Context, settings map[string]string) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
