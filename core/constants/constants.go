package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second

	// context keys
	ContextTokenData = "token_data"

	// redis keys
	RedisKeyLoginAttempt = "login_attempt:"

	MaxLoginAttempts   = 5
	LoginBlockDuration = 15 * time.Minute

	// share links
	DefaultShareLinkTTLDays = 7
	MaxShareLinkTTLDays     = 365
	ShareTokenBytes         = 32

	// database
	DatabaseDriverPostgres  = "postgres"
	DatabaseDriverSQLite    = "sqlite3"
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 5 // minutes

	MaxGroupCodeLength = 64
	MaxUserNameLength  = 100
)
