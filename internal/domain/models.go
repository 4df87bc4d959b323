package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the kind of account a user holds on the platform
type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// User is an account on the platform
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name      string    `gorm:"not null;size:120" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	Role      Role      `gorm:"not null;size:16;index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserProfile holds the editable, presentation-oriented part of a user
type UserProfile struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url,omitempty"`
	City      string    `gorm:"size:120" json:"city,omitempty"`
	Language  string    `gorm:"size:8" json:"language,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Session is an opaque login token issued to a user
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Role      Role      `gorm:"size:16" json:"role"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsExpired checks if the session is past its expiry
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// VehicleCategory groups vehicles for pricing
type VehicleCategory string

const (
	CategoryStandard VehicleCategory = "standard"
	CategoryComfort  VehicleCategory = "comfort"
	CategoryVan      VehicleCategory = "van"
)

// Vehicle is a car operated by a driver
type Vehicle struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	DriverID  string          `gorm:"type:uuid;index" json:"driver_id"`
	Plate     string          `gorm:"uniqueIndex;not null;size:16" json:"plate"`
	Model     string          `gorm:"size:120" json:"model"`
	Seats     int             `gorm:"not null;default:4" json:"seats"`
	Category  VehicleCategory `gorm:"size:16;index" json:"category"`
	Available bool            `gorm:"not null;index" json:"available"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not
func (v *Vehicle) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a ride reserved by a client
type Booking struct {
	ID         string        `gorm:"primaryKey;type:uuid" json:"id"`
	ClientID   string        `gorm:"type:uuid;index;not null" json:"client_id"`
	VehicleID  *string       `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	Pickup     string        `gorm:"not null;size:255" json:"pickup"`
	Dropoff    string        `gorm:"not null;size:255" json:"dropoff"`
	PickupAt   time.Time     `gorm:"index" json:"pickup_at"`
	Passengers int           `gorm:"not null;default:1" json:"passengers"`
	Status     BookingStatus `gorm:"size:16;index;default:pending" json:"status"`
	PriceCents int64         `json:"price_cents"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not
func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// PricingRule is the fare table entry for one vehicle category
type PricingRule struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Category         VehicleCategory `gorm:"uniqueIndex;size:16" json:"category"`
	BaseFareCents    int64           `json:"base_fare_cents"`
	PerKmCents       int64           `json:"per_km_cents"`
	PerMinuteCents   int64           `json:"per_minute_cents"`
	MinimumFareCents int64           `json:"minimum_fare_cents"`
	Active           bool            `gorm:"not null" json:"active"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// BlogPost is an article written by an editor
type BlogPost struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null;size:160" json:"slug"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Summary     string     `gorm:"size:512" json:"summary,omitempty"`
	Body        string     `gorm:"type:text" json:"body"`
	AuthorID    string     `gorm:"type:uuid;index" json:"author_id"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not
func (p *BlogPost) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SystemSetting is one row of the platform-wide configuration table
type SystemSetting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SystemConfig is the whole settings table keyed by setting name
type SystemConfig map[string]string

// AllModels lists every table for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&Session{},
		&Vehicle{},
		&Booking{},
		&PricingRule{},
		&BlogPost{},
		&SystemSetting{},
	}
}
