package cache

import "time"

// Expiry tiers. Pick one by intent instead of writing numeric literals at
// call sites.
const (
	TTLShort   = 5 * time.Minute
	TTLMedium  = 30 * time.Minute
	TTLLong    = time.Hour
	TTLDay     = 24 * time.Hour
	TTLWeek    = 7 * 24 * time.Hour
	TTLSession = 15 * time.Minute
)

// Logical key constructors. Every cached entity is named here and nowhere
// else; the namespace prefix is added by the cache itself.

func UserKey(id string) string           { return "user:" + id }
func UserProfileKey(id string) string    { return "user:" + id + ":profile" }
func UserBookingsKey(id string) string   { return "user:" + id + ":bookings" }
func UserSessionKey(token string) string { return "session:" + token }

// UserViewsPattern matches every derived view of a user (profile, bookings)
// but not the user record itself.
func UserViewsPattern(id string) string { return "user:" + id + ":*" }

func VehicleKey(id string) string  { return "vehicle:" + id }
func AvailableVehiclesKey() string { return "vehicles:available" }

func BookingKey(id string) string { return "booking:" + id }

func PricingRulesKey() string { return "pricing:rules" }

func BlogPostKey(slug string) string { return "blog:post:" + slug }
func PublishedPostsKey() string      { return "blog:published" }
func BlogPattern() string            { return "blog:*" }

func SystemConfigKey() string { return "system:config" }

func RateLimitKey(identifier string) string { return "rate_limit:" + identifier }
