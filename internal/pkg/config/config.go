package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - optional integrations (Redis, Kafka, Jaeger) are disabled when their address is empty
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Redemption RedemptionConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type RedemptionConfig struct {
	// Store selects the unit of work backend: "postgres" or "memory".
	Store             string        `envconfig:"REDEMPTION_STORE" default:"postgres"`
	// SeedFile is a JSON array of codes loaded into the memory store at startup.
	SeedFile          string        `envconfig:"REDEMPTION_SEED_FILE"`
	ReservationTTL    time.Duration `envconfig:"REDEMPTION_RESERVATION_TTL" default:"15m"`
	ReaperInterval    time.Duration `envconfig:"REDEMPTION_REAPER_INTERVAL" default:"1m"`
	ReaperBatchSize   int           `envconfig:"REDEMPTION_REAPER_BATCH_SIZE" default:"100"`
	ReaperConcurrency int           `envconfig:"REDEMPTION_REAPER_CONCURRENCY" default:"4"`
	RelayInterval     time.Duration `envconfig:"REDEMPTION_RELAY_INTERVAL" default:"5s"`
	RelayBatchSize    int           `envconfig:"REDEMPTION_RELAY_BATCH_SIZE" default:"100"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	StatsTTL time.Duration `envconfig:"REDIS_STATS_TTL" default:"5m"`
	// CodeTTL bounds how long GET /codes/:code may show a usage count from
	// before a confirm: a lookup racing the post-commit invalidation can
	// refill the entry with the older row. Validate never reads this cache.
	CodeTTL  time.Duration `envconfig:"REDIS_CODE_TTL" default:"30s"`
}

type KafkaConfig struct {
	Brokers    []string `envconfig:"KAFKA_BROKERS"`
	AuditTopic string   `envconfig:"KAFKA_AUDIT_TOPIC" default:"redemption.audit"`
}

type TracingConfig struct {
	ServiceName    string `envconfig:"TRACING_SERVICE_NAME" default:"redemption-service"`
	JaegerEndpoint string `envconfig:"TRACING_JAEGER_ENDPOINT"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Redemption: RedemptionConfig{
			Store:             "postgres",
			ReservationTTL:    15 * time.Minute,
			ReaperInterval:    time.Minute,
			ReaperBatchSize:   100,
			ReaperConcurrency: 4,
			RelayInterval:     time.Second,
			RelayBatchSize:    100,
		},
		Redis: RedisConfig{
			StatsTTL: time.Minute,
			CodeTTL:  10 * time.Second,
		},
		Kafka: KafkaConfig{
			AuditTopic: "redemption.audit",
		},
		Tracing: TracingConfig{
			ServiceName: "redemption-service-test",
		},
	}
}
