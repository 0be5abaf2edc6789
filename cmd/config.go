package cmd

// Config carries the environment configuration of the service. All values
// arrive as strings from the environment; parsing happens where they are
// consumed.
type Config struct {
	HTTPPort string

	// RequestTimeout bounds the context of each HTTP request so store
	// operations fail fast instead of hanging; the order event stream
	// is exempt.
	RequestTimeout string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the menu catalog cache when set; empty disables it.
	RedisAddr     string
	RedisPassword string
	MenuCacheTTL  string

	// SimulateProgress enables the background job that advances undelivered
	// orders automatically ("true" to enable).
	SimulateProgress string
	ProgressInterval string
}
