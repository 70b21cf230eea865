package utils

import "time"

// Application Constants
const (
	AppName    = "PlateLink"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "en"
	DefaultCountryCode = "+91"
	DefaultTimeZone    = "Asia/Kolkata"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour

	// Plate Constants
	PlateMinLength = 8
	PlateMaxLength = 12

	// Credit Constants (overridable via config)
	DefaultSignupBonus    = int64(3)
	DefaultReferralReward = int64(5)
	DefaultRevealCost     = int64(1)

	// Ledger Constants
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500

	// Referral
	ReferralCodeLength = 8

	// Rate Limiting
	DefaultRateLimit = 100
	SearchRateLimit  = 30

	// Activity
	DefaultActivityFeedSize = 20
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheVehiclePrefix      = "vehicle:"
	CacheVehiclePlatePrefix = "vehicle_plate:"
	CacheBalancePrefix      = "balance:"
	CacheRateLimitPrefix    = "rate_limit:"
)

// Cache TTLs
const (
	VehicleCacheTTL = 15 * time.Minute
	PlateCacheTTL   = 30 * time.Minute
)
