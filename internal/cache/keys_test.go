package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyPolicy(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"user", UserKey("42"), "user:42"},
		{"user profile", UserProfileKey("42"), "user:42:profile"},
		{"user bookings", UserBookingsKey("42"), "user:42:bookings"},
		{"user views", UserViewsPattern("42"), "user:42:*"},
		{"session", UserSessionKey("tok"), "session:tok"},
		{"vehicle", VehicleKey("v-1"), "vehicle:v-1"},
		{"available vehicles", AvailableVehiclesKey(), "vehicles:available"},
		{"booking", BookingKey("b-9"), "booking:b-9"},
		{"pricing rules", PricingRulesKey(), "pricing:rules"},
		{"blog post", BlogPostKey("hello-world"), "blog:post:hello-world"},
		{"published posts", PublishedPostsKey(), "blog:published"},
		{"blog pattern", BlogPattern(), "blog:*"},
		{"system config", SystemConfigKey(), "system:config"},
		{"rate limit", RateLimitKey("ip:1.2.3.4"), "rate_limit:ip:1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestTTLTiers(t *testing.T) {
	assert.Equal(t, 300*time.Second, TTLShort)
	assert.Equal(t, 1800*time.Second, TTLMedium)
	assert.Equal(t, 3600*time.Second, TTLLong)
	assert.Equal(t, 86400*time.Second, TTLDay)
	assert.Equal(t, 604800*time.Second, TTLWeek)
	assert.Equal(t, 900*time.Second, TTLSession)
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("")
	assert.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = CodecByName("msgpack")
	assert.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())

	_, err = CodecByName("xml")
	assert.Error(t, err)
}
