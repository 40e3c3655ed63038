package cmd

import "time"

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	IdentityServiceURL       string
	IdentityRetryMaxAttempts int
	IdentityRetryBaseDelay   time.Duration
	IdentityRetryMaxDelay    time.Duration

	RequestTimeout time.Duration

	CompletionSchedule string
	CompletionGrace    time.Duration
	PurgeSchedule      string
	PurgeRetention     time.Duration
}
