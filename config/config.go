package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	Port     int
	MongoURI string
	MongoDB  string
	JWTKey   string
	Debug    bool

	// explicit opt-in, never runs on its own (demo data only)
	SeedDemoData bool

	// RabbitMQ connection for the notification pipeline; notifications are
	// disabled when the URL is empty
	AMQPUrl string

	// transactional email (SendGrid SMTP relay or any SMTP server)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	FromMail string

	// WhatsApp Business API
	WhatsAppToken   string
	WhatsAppPhoneID string
	WhatsAppBaseURL string
}

// LoadConfig loads configuration from the environment (.env honored when present)
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return &Config{
		Port:     port,
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/originarsa?authSource=admin"),
		MongoDB:  getEnv("MONGO_DB", "originarsa"),
		JWTKey:   getEnv("JWT_KEY", "your-secret-key"), // replace in production
		Debug:    getEnv("GIN_MODE", "debug") == "debug",

		SeedDemoData: getEnv("SEED_DEMO_DATA", "") == "true",

		AMQPUrl: getEnv("AMQP_URL", ""),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: smtpPort,
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		FromMail: getEnv("FROM_EMAIL", "notificaciones@originarsa.com"),

		WhatsAppToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppPhoneID: getEnv("WHATSAPP_PHONE_ID", ""),
		WhatsAppBaseURL: getEnv("WHATSAPP_BASE_URL", "https://graph.facebook.com/v18.0"),
	}
}

// getEnv returns the env var value or a default when unset
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
