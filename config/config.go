// Package config reads the service settings from the environment. A .env file
// in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Notification backends
const (
	NotifyInline = "inline"
	NotifyRedis  = "redis"
	NotifyKafka  = "kafka"
)

// Email providers
const (
	EmailLog      = "log"
	EmailPostmark = "postmark"
	EmailSendgrid = "sendgrid"
)

type Config struct {
	Port string

	DatabaseDriver    string
	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool

	JWTSecret string
	TokenTTL  time.Duration

	NotifyBackend string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisQueue    string
	KafkaBrokers  []string
	KafkaTopic    string
	KafkaGroupID  string

	EmailProvider    string
	PostmarkAPIToken string
	SendgridAPIKey   string
	EmailSender      string
	InvoiceDir       string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the .env file, if any, and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults and validating values
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}
	cfg := &Config{
		Port: p.str("PORT", "8000"),

		DatabaseDriver:    p.str("DATABASE_DRIVER", DriverMongo),
		MongoURI:          p.str("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     p.str("MONGO_DATABASE", "ecommerce"),
		MongoTransactions: p.boolean("MONGO_TRANSACTIONS", false),

		JWTSecret: getenv("JWT_SECRET"),
		TokenTTL:  p.duration("TOKEN_TTL", 24*time.Hour),

		NotifyBackend: p.str("NOTIFY_BACKEND", NotifyInline),
		RedisAddr:     p.str("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		RedisDB:       p.integer("REDIS_DB", 0),
		RedisQueue:    p.str("REDIS_QUEUE", "notifications:checkout"),
		KafkaBrokers:  p.list("KAFKA_BROKERS", nil),
		KafkaTopic:    p.str("KAFKA_TOPIC", "shop.checkout"),
		KafkaGroupID:  p.str("KAFKA_GROUP_ID", "notification-worker"),

		EmailProvider:    p.str("EMAIL_PROVIDER", EmailLog),
		PostmarkAPIToken: getenv("POSTMARK_API_TOKEN"),
		SendgridAPIKey:   getenv("SENDGRID_API_KEY"),
		EmailSender:      p.str("EMAIL_SENDER", "no-reply@go-shop.local"),
		InvoiceDir:       p.str("INVOICE_DIR", "media/invoices"),

		CORSOrigins:    p.list("CORS_ORIGINS", []string{"*"}),
		RateLimitRPS:   p.float("RATE_LIMIT_RPS", 5),
		RateLimitBurst: p.integer("RATE_LIMIT_BURST", 10),
	}
	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.DatabaseDriver {
	case DriverMongo, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: unknown driver %q", c.DatabaseDriver))
	}
	if c.JWTSecret == "" && c.DatabaseDriver != DriverMemory {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.NotifyBackend {
	case NotifyInline, NotifyRedis:
	case NotifyKafka:
		if len(c.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("NOTIFY_BACKEND: unknown backend %q", c.NotifyBackend))
	}
	switch c.EmailProvider {
	case EmailLog:
	case EmailPostmark:
		if c.PostmarkAPIToken == "" {
			errs = append(errs, errors.New("POSTMARK_API_TOKEN is required for postmark"))
		}
	case EmailSendgrid:
		if c.SendgridAPIKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required for sendgrid"))
		}
	default:
		errs = append(errs, fmt.Errorf("EMAIL_PROVIDER: unknown provider %q", c.EmailProvider))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (p *parser) boolean(key string, def bool) bool {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

// list splits a comma separated value, dropping blanks
func (p *parser) list(key string, def []string) []string {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
