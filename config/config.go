package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Ggirassol/myIntake-API/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config carries everything the process needs from the environment. It is built
// once in main and handed down; nothing else reads os.Getenv.
type Config struct {
	Port    string
	BaseURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret            []byte
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerificationTokenTTL time.Duration

	AWSRegion string
	SESSource string
}

func Load() (*Config, error) {
	// A missing .env is fine in environments that inject real env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Port:       getenv("PORT", "3000"),
		BaseURL:    getenv("BASE_URL", "http://localhost:3000"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "myintake"),
		DBPort:     getenv("DB_PORT", "5432"),
		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		AWSRegion:  getenv("AWS_REGION", "eu-west-1"),
		SESSource:  os.Getenv("SES_EMAIL"),
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	var err error
	if cfg.AccessTokenTTL, err = duration("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = duration("REFRESH_TOKEN_TTL", 4*7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.VerificationTokenTTL, err = duration("VERIFICATION_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

// OpenDB connects and migrates. The caller owns the handle and closes it on
// shutdown; no package-level connection state.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.DailyIntake{}); err != nil {
		return nil, fmt.Errorf("AutoMigrate failed: %w", err)
	}

	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
