package config

import (
	"encoding/base64"
	"fmt"
	"os"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendDrive  = "drive"
	BackendMinio  = "minio"
	BackendMemory = "memory"
)

// Config holds the application configuration
type Config struct {
	ServerPort     string
	StorageBackend string

	// Google Drive backend
	SharedFolderID    string
	GoogleCredentials string // base64-encoded service-account JSON

	// MinIO backend
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioRootPrefix string
	MinioUseSSL     bool
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		ServerPort:     GetEnv("SERVER_PORT", "5001"),
		StorageBackend: GetEnv("STORAGE_BACKEND", BackendDrive),

		SharedFolderID:    GetEnv("SHARED_GOOGLE_DRIVE_FOLDER_ID", ""),
		GoogleCredentials: GetEnv("GOOGLE_CREDENTIALS", ""),

		MinioEndpoint:   GetEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  GetEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:  GetEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:     GetEnv("MINIO_BUCKET", "team-submissions"),
		MinioRootPrefix: GetEnv("MINIO_ROOT_PREFIX", ""),
		MinioUseSSL:     GetEnv("MINIO_USE_SSL", "false") == "true",
	}
}

// DecodeCredentials decodes the base64 service-account blob. An empty
// blob is an error: the drive backend cannot start without it.
func (c *Config) DecodeCredentials() ([]byte, error) {
	if c.GoogleCredentials == "" {
		return nil, fmt.Errorf("no Google credentials provided")
	}

	decoded, err := base64.StdEncoding.DecodeString(c.GoogleCredentials)
	if err != nil {
		return nil, fmt.Errorf("failed to decode GOOGLE_CREDENTIALS: %v", err)
	}
	return decoded, nil
}

// GetEnv gets environment variable with default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
