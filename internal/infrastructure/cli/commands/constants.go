package commands

// Error messages
const (
	ErrConfigLoaderUnavailable   = "config loader unavailable"
	ErrDoctorServiceUnavailable  = "doctor service unavailable"
	ErrSessionStoreUnavailable   = "session store unavailable"
	ErrCacheStoreUnavailable     = "cache store unavailable"
	ErrKeyRequired               = "--key is required"
	ErrQueryRequired             = "--query required"
	ErrInvalidRetainDays         = "--days must be > 0"
	ErrModelNameEndpointRequired = "--name and --endpoint are required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoSessionsRecorded       = "No sessions recorded yet."
	MsgNoCachedResponses        = "No cached responses."
)
