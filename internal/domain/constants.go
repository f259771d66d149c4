package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultCacheTTL is how long cached provider replies stay valid
	DefaultCacheTTL = time.Hour
)

// Limit constants
const (
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// DefaultSessionLimit is the default number of session records to display
	DefaultSessionLimit = 20
	// DefaultSessionSearchLimit is the default number of search results to return
	DefaultSessionSearchLimit = 50
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default completion budget per call
	DefaultMaxTokens = 500
	// DefaultTemperature is the default sampling temperature
	DefaultTemperature = 0.7
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
