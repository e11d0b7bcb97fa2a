package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Version is reported by the health endpoint.
var Version = "1.0.0"

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	SecretKey   string
	ServiceName string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	CORSOrigins []string

	// Mail transport
	MailProvider      string // smtp, ses or noop
	MailServer        string
	MailPort          string
	MailUseTLS        bool
	MailUsername      string
	MailPassword      string
	MailDefaultSender string
	MailFromName      string

	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string

	// Single address that receives "new RSVP" emails
	NotificationEmail string

	// Notification queue
	NotifyQueue     string // memory or kafka
	NotifyQueueSize int
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaGroupID    string

	// Redis live feed (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTLPEndpoint string

	Party PartyDefaults
}

// PartyDefaults seeds the party record created when no active party exists.
type PartyDefaults struct {
	Title        string
	Description  string
	Date         time.Time
	Time         string
	Address      string
	MaxGuests    int
	RSVPDeadline time.Time
	ContactEmail string
	ContactPhone string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("GO_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SecretKey:   getEnv("SECRET_KEY", "dev-secret-key"),
		ServiceName: getEnv("SERVICE_NAME", "party-rsvp-backend"),

		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://birthday_party.db"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		MailProvider:      strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
		MailServer:        os.Getenv("MAIL_SERVER"),
		MailPort:          getEnv("MAIL_PORT", "587"),
		MailUseTLS:        getBool("MAIL_USE_TLS", true),
		MailUsername:      os.Getenv("MAIL_USERNAME"),
		MailPassword:      os.Getenv("MAIL_PASSWORD"),
		MailDefaultSender: os.Getenv("MAIL_DEFAULT_SENDER"),
		MailFromName:      getEnv("MAIL_FROM_NAME", "Party RSVP"),

		SESRegion:          getEnv("SES_REGION", "us-east-1"),
		SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),

		NotificationEmail: os.Getenv("NOTIFICATION_EMAIL"),

		NotifyQueue:     strings.ToLower(getEnv("NOTIFY_QUEUE", "memory")),
		NotifyQueueSize: getInt("NOTIFY_QUEUE_SIZE", 100),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "party-rsvp-notifications"),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "party-rsvp-mailer"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),

		Party: PartyDefaults{
			Title:        getEnv("PARTY_TITLE", "Darius' Birthday Party"),
			Description:  getEnv("PARTY_DESCRIPTION", "Join us for an amazing birthday celebration!"),
			Date:         getTime("PARTY_DATE", time.Date(2024, 7, 27, 19, 0, 0, 0, time.UTC)),
			Time:         getEnv("PARTY_TIME", "7:00 PM"),
			Address:      getEnv("PARTY_ADDRESS", "123 Party Street, Fun City"),
			MaxGuests:    getInt("PARTY_MAX_GUESTS", 50),
			RSVPDeadline: getTime("PARTY_RSVP_DEADLINE", time.Date(2024, 7, 25, 23, 59, 0, 0, time.UTC)),
			ContactEmail: getEnv("PARTY_CONTACT_EMAIL", "party@example.com"),
			ContactPhone: getEnv("PARTY_CONTACT_PHONE", "+1 (555) 123-4567"),
		},
	}
}

// MailConfigured reports whether the selected provider has enough settings to send.
func (c *Config) MailConfigured() bool {
	switch c.MailProvider {
	case "ses":
		return c.SESAccessKeyID != "" && c.SESSecretAccessKey != "" && c.MailDefaultSender != ""
	case "smtp":
		return c.MailServer != "" && c.MailUsername != "" && c.MailPassword != ""
	default:
		return false
	}
}

// DatabaseDriver returns "postgres" or "sqlite" depending on DATABASE_URL.
func (c *Config) DatabaseDriver() string {
	u := strings.ToLower(c.DatabaseURL)
	if strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://") || strings.Contains(u, "host=") {
		return "postgres"
	}
	return "sqlite"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, defaultValue)
		return defaultValue
	}
	return b
}

// getTime parses RFC3339 values and always returns UTC.
func getTime(key string, defaultValue time.Time) time.Time {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue.UTC()
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		log.Printf("invalid %s=%q, expected RFC3339", key, v)
		return defaultValue.UTC()
	}
	return t.UTC()
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSuffix(strings.TrimSpace(item), "/")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
