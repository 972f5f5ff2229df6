package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/devakhil7/plyr-sub003/storage"
)

// Config holds every runtime parameter the application reads from the
// environment.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// Secret used to verify payment gateway callback signatures.
	RazorpayKeySecret string

	// How often pending bookings past their start time are swept to lapsed.
	BookingSweepInterval time.Duration

	R2 storage.CloudflareR2UploaderConfig
}

// Load reads the configuration from environment variables. A .env file is
// loaded first when present; missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	razorpaySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if razorpaySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_SECRET environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	sweepInterval := time.Minute
	if raw := os.Getenv("BOOKING_SWEEP_INTERVAL"); raw != "" {
		sweepInterval, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BOOKING_SWEEP_INTERVAL environment variable: %w", err)
		}
		if sweepInterval <= 0 {
			return nil, fmt.Errorf("BOOKING_SWEEP_INTERVAL must be positive, got %v", sweepInterval)
		}
	}

	return &Config{
		DatabaseURL:          dbURL,
		JWTSecretKey:         jwtKey,
		ServerPort:           port,
		RazorpayKeySecret:    razorpaySecret,
		BookingSweepInterval: sweepInterval,
		R2: storage.CloudflareR2UploaderConfig{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}, nil
}
