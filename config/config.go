package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL          string
	RedisAddress   string
	ListenAddress  string
	AllowedOrigins []string
}
