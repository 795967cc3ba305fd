package config

import (
	"os"

	"github.com/campusboard/board-service/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	LogLevel   string
	ServerPort string

	DatabaseDSN string

	// Token signing
	AccessSecret  string
	RefreshSecret string

	// Kafka (shared by the API producer and the mail worker consumer)
	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	// Mail worker
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	// Link bases embedded into outgoing mail
	VerifyBaseURL        string
	ResetPasswordBaseURL string

	// CORS
	AllowOrigins string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			logger.S().Warnw("env file not found or could not be loaded", "error", err)
		}
	}

	return Config{
		Env:        getEnv("ENV", "dev"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		ServerPort: getEnv("SERVER_PORT", ":3000"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_SECRET"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "board.mail"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "mail-worker"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnv("MAIL_FROM_NAME", "Campus Board"),

		VerifyBaseURL:        os.Getenv("VERIFY_BASE_URL"),
		ResetPasswordBaseURL: os.Getenv("RESET_PASSWORD_BASE_URL"),

		AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
