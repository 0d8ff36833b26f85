package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"3003"`

	DBHost string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort string `envconfig:"DB_PORT" default:"3306"`
	DBUser string `envconfig:"DB_USER" default:"root"`
	DBPass string `envconfig:"DB_PASS" default:""`
	DBName string `envconfig:"DB_NAME" default:"confidencevoice"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	KafkaBrokers  string `envconfig:"KAFKA_BROKERS" default:"localhost:9092,localhost:9093,localhost:9094"`
	OrderTopic    string `envconfig:"ORDER_TOPIC" default:"order-topic"`
	ConsumerGroup string `envconfig:"CONSUMER_GROUP" default:"bookstore-cart-group"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"secret"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LogLevel  string  `envconfig:"LOG_LEVEL" default:"info"`
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"10"`
	RateBurst int     `envconfig:"RATE_BURST" default:"30"`

	BookCacheTTL   time.Duration `envconfig:"BOOK_CACHE_TTL" default:"1m"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`

	AnalysisUploadURL string `envconfig:"ANALYSIS_UPLOAD_URL" default:"http://127.0.0.1:5000"`
	AnalysisAudioURL  string `envconfig:"ANALYSIS_AUDIO_URL" default:"http://127.0.0.1:5001"`
	AnalysisVideoURL  string `envconfig:"ANALYSIS_VIDEO_URL" default:"http://127.0.0.1:5002"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine, the environment alone is enough
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN builds the MySQL data source name. parseTime lets DATE/TIMESTAMP scan into
// time.Time and clientFoundRows makes an UPDATE that changes nothing still count
// as a matched row.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// AnalysisServices maps the service names used in routes to their base URLs.
func (c *Config) AnalysisServices() map[string]string {
	return map[string]string{
		"upload": c.AnalysisUploadURL,
		"audio":  c.AnalysisAudioURL,
		"video":  c.AnalysisVideoURL,
	}
}
