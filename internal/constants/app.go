package constants

import "time"

// Application Information
const (
	AppName    = "ToolFlix API"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Token Ledger
const (
	TokenCodePrefix          = "TFX"
	TokenCodeBlockLength     = 6
	DefaultTokenValidityDays = 30
)

// Chat
const (
	ChatTTL                = 7 * 24 * time.Hour
	ChatMessageMinInterval = 30 * time.Second
	ChatMessageMaxLength   = 500
	ChatMessageListLimit   = 200
)

// Chat message sender roles
const (
	SenderUser     = "user"
	SenderOperator = "operator"
)

// Experience counter
const (
	XPMaxPerRequest = 1000
)

// Cache Key Prefixes
const (
	CacheKeyPrefix       = "toolflix:"
	CacheKeyGames        = CacheKeyPrefix + "games"
	CacheKeyPremiumTotal = CacheKeyPrefix + "premium:total"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
