package constants

// Environment variable keys
const (
	EnvConfigPath = "SLAYER_CONFIG"
	EnvDBPath     = "SLAYER_DB"
	EnvAddr       = "SLAYER_ADDR"
	EnvRedisAddr  = "SLAYER_REDIS_ADDR"
	EnvDebug      = "SLAYER_DEBUG"
	EnvHealthURL  = "SLAYER_HEALTH_URL"

	DefaultConfigPath = "./slayer_config.json"
	DefaultDBPath     = "./data/slayer.db"
	DefaultAddr       = ":8080"
	DefaultHealthURL  = "http://127.0.0.1:8080/healthz"
)

// Session store drivers
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	RedisSessionKeyPrefix = "slayer:battle:"
)

// HTTP headers and content types
const (
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"
	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteSkins         = "/skins"
	RouteBattles       = "/battles"
	RouteBattlesRecent = "/battles/recent"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleAction  = "/battles/:battleID/action"
	RouteBattleRestart = "/battles/:battleID/restart"
	RouteStats         = "/stats"
	RouteVersion       = "/version"
	RouteHealth        = "/healthz"
	RouteMetrics       = "/metrics"

	ParamBattleID = "battleID"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyBattle  = "battle"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidBattleID    = "Invalid battle ID"
	ErrBattleNotFound     = "Battle not found"
	ErrUnknownSkin        = "Unknown skin"
	ErrUnknownAction      = "Unknown action; expected attack, heal or retreat"
	ErrBattleOver         = "Battle is over; restart to play again"
	ErrNoHealsLeft        = "No heals left"
	ErrFailedStartBattle  = "Failed to start battle"
	ErrFailedStoreAction  = "Failed to store action"
	ErrFailedRestart      = "Failed to restart battle"
	ErrFailedEndSession   = "Failed to end battle session"
	ErrFailedFetchStats   = "Failed to fetch stats"
	ErrFailedFetchRecords = "Failed to fetch battle records"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldSkin     = "skin"
	LogFieldAction   = "action"
	LogFieldPhase    = "phase"
	LogFieldTurns    = "turns"
	LogFieldAddr     = "addr"
	LogFieldStore    = "store"
	LogFieldCount    = "count"
	LogFieldPath     = "path"
)
