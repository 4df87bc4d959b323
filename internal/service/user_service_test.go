package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"booking-platform/internal/cache"
	"booking-platform/internal/domain"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

var created = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func TestGetUser_ServedFromCacheAfterFirstRead(t *testing.T) {
	c, mr := newCache(t)
	users := new(MockUserRepository)
	svc := service.NewUserService(users, new(MockBookingRepository), c, logger.NewNop())
	ctx := context.Background()

	user := &domain.User{ID: "u1", Email: "ada@example.com", Name: "Ada", Role: domain.RoleClient, CreatedAt: created}
	users.On("FindByID", mock.Anything, "u1").Return(user, nil).Once()

	first, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, user, first)
	assert.Equal(t, user, second)
	assert.Equal(t, cache.TTLLong, mr.TTL(testPrefix+"user:u1"))
	users.AssertExpectations(t)
}

func TestGetUser_NotFoundIsNotCached(t *testing.T) {
	c, mr := newCache(t)
	users := new(MockUserRepository)
	svc := service.NewUserService(users, new(MockBookingRepository), c, logger.NewNop())

	users.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Twice()

	for i := 0; i < 2; i++ {
		_, err := svc.GetUser(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	}
	assert.False(t, mr.Exists(testPrefix+"user:missing"))
	users.AssertExpectations(t)
}

func TestUpdateProfile_InvalidatesUserViews(t *testing.T) {
	c, mr := newCache(t)
	users := new(MockUserRepository)
	bookings := new(MockBookingRepository)
	svc := service.NewUserService(users, bookings, c, logger.NewNop())
	ctx := context.Background()

	users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
	users.On("FindProfile", mock.Anything, "u1").Return(&domain.UserProfile{UserID: "u1", City: "Lyon"}, nil).Once()
	bookings.On("ListByClient", mock.Anything, "u1").Return([]domain.Booking{{ID: "b1", ClientID: "u1"}}, nil).Once()

	_, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.ListBookings(ctx, "u1")
	require.NoError(t, err)
	require.True(t, mr.Exists(testPrefix+"user:u1:profile"))
	require.True(t, mr.Exists(testPrefix+"user:u1:bookings"))

	// another user's views must survive
	require.True(t, c.Set(ctx, cache.UserProfileKey("u2"), domain.UserProfile{UserID: "u2"}, cache.TTLMedium))

	users.On("SaveProfile", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.UserID == "u1" && p.City == "Paris"
	})).Return(nil).Once()

	profile, err := svc.UpdateProfile(ctx, "u1", &domain.UpdateProfileRequest{City: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "Paris", profile.City)

	assert.False(t, mr.Exists(testPrefix+"user:u1"))
	assert.False(t, mr.Exists(testPrefix+"user:u1:profile"))
	assert.False(t, mr.Exists(testPrefix+"user:u1:bookings"))
	assert.True(t, mr.Exists(testPrefix+"user:u2:profile"))

	users.On("FindProfile", mock.Anything, "u1").Return(&domain.UserProfile{UserID: "u1", City: "Paris"}, nil).Once()
	fresh, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", fresh.City)
	users.AssertExpectations(t)
}

func TestUpdateProfile_EvictsThroughCache(t *testing.T) {
	users := new(MockUserRepository)
	mc := new(MockCache)
	svc := service.NewUserService(users, new(MockBookingRepository), mc, logger.NewNop())

	users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
	users.On("SaveProfile", mock.Anything, mock.Anything).Return(nil)
	mc.On("Delete", mock.Anything, cache.UserKey("u1")).Return(true).Once()
	mc.On("InvalidatePattern", mock.Anything, cache.UserViewsPattern("u1")).Return(int64(2)).Once()

	_, err := svc.UpdateProfile(context.Background(), "u1", &domain.UpdateProfileRequest{Bio: "hi"})
	require.NoError(t, err)
	mc.AssertExpectations(t)
}

func TestUpdateProfile_RejectsBadAvatar(t *testing.T) {
	users := new(MockUserRepository)
	mc := new(MockCache)
	svc := service.NewUserService(users, new(MockBookingRepository), mc, logger.NewNop())

	_, err := svc.UpdateProfile(context.Background(), "u1", &domain.UpdateProfileRequest{AvatarURL: "ftp://host/a.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	users.AssertNotCalled(t, "SaveProfile", mock.Anything, mock.Anything)
	mc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateProfile_SaveErrorKeepsCache(t *testing.T) {
	users := new(MockUserRepository)
	mc := new(MockCache)
	svc := service.NewUserService(users, new(MockBookingRepository), mc, logger.NewNop())
	boom := errors.New("connection reset")

	users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
	users.On("SaveProfile", mock.Anything, mock.Anything).Return(boom)

	_, err := svc.UpdateProfile(context.Background(), "u1", &domain.UpdateProfileRequest{})
	assert.ErrorIs(t, err, boom)
	mc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mc.AssertNotCalled(t, "InvalidatePattern", mock.Anything, mock.Anything)
}

func TestGetUser_CacheUnavailableFallsBackToRepository(t *testing.T) {
	users := new(MockUserRepository)
	mc := new(MockCache)
	svc := service.NewUserService(users, new(MockBookingRepository), mc, logger.NewNop())

	mc.On("Get", mock.Anything, cache.UserKey("u1"), mock.Anything).Return(false)
	mc.On("Set", mock.Anything, cache.UserKey("u1"), mock.Anything, cache.TTLLong).Return(false)
	users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Name: "Ada"}, nil).Twice()

	for i := 0; i < 2; i++ {
		user, err := svc.GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
	}
	users.AssertExpectations(t)
}
