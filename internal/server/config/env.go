package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over file entries (godotenv does not override them).
//
// Recognized variables:
//
//	TRACKIT_ADDR                 HTTP bind address
//	DATABASE_URL                 PostgreSQL DSN
//	TRACKIT_SECRET_KEY           JWT HMAC secret
//	TRACKIT_ACCESS_TOKEN_MINUTES access token validity, minutes
//	TRACKIT_GUEST_TOKEN_MINUTES  guest token validity, minutes
//	TRACKIT_STORAGE              "local" or "s3"
//	TRACKIT_UPLOAD_DIR           local storage base directory
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	setMinutes := func(dst *time.Duration, name string) {
		if v := os.Getenv(name); v != "" {
			if minutes, err := strconv.Atoi(v); err == nil {
				*dst = time.Duration(minutes) * time.Minute
			}
		}
	}

	setString(&config.EndpointAddr, "TRACKIT_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.SecretKey, "TRACKIT_SECRET_KEY")
	setMinutes(&config.AccessTokenValidityDuration, "TRACKIT_ACCESS_TOKEN_MINUTES")
	setMinutes(&config.GuestTokenValidityDuration, "TRACKIT_GUEST_TOKEN_MINUTES")
	setString(&config.StorageBackend, "TRACKIT_STORAGE")
	setString(&config.UploadDir, "TRACKIT_UPLOAD_DIR")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}
