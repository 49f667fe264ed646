package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	BackupBucket   string // empty disables the snapshot job
	BackupSchedule string

	OTPTTL        time.Duration
	SweepSchedule string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users      string
	BudgetData string
	OTPStore   string
	Bills      string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:      getEnv("DYNAMO_TABLE_USERS", "smartbudget_users"),
			BudgetData: getEnv("DYNAMO_TABLE_BUDGET_DATA", "smartbudget_budget_data"),
			OTPStore:   getEnv("DYNAMO_TABLE_OTP_STORE", "smartbudget_otp_store"),
			Bills:      getEnv("DYNAMO_TABLE_BILLS", "smartbudget_bills"),
		},

		BackupBucket:   getEnv("BACKUP_BUCKET", ""),
		BackupSchedule: getEnv("BACKUP_SCHEDULE", "@daily"),

		OTPTTL:        time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,
		SweepSchedule: getEnv("OTP_SWEEP_SCHEDULE", "@every 10m"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@smartbudget.app"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "SmartBudget Pro"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
