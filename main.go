package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/mpetrov/teamdrop/internal/config"
	"github.com/mpetrov/teamdrop/internal/service"
	"github.com/mpetrov/teamdrop/internal/storage"
)

func main() {
	// A .env file is optional; deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	log.Printf("Starting server with config: Backend=%s, Port=%s", cfg.StorageBackend, cfg.ServerPort)

	provider, err := newProvider(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage provider: %v", err)
	}
	log.Printf("Storage provider initialized successfully (%s)", cfg.StorageBackend)

	submissions := service.NewSubmissionService(provider)
	api := NewSubmissionAPI(submissions)

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", api.UploadHandler)
	mux.HandleFunc("/report", api.ReportHandler)
	mux.HandleFunc("/download_report", api.DownloadReportHandler)

	serverAddr := ":" + cfg.ServerPort
	log.Printf("Server listening on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, withCORS(mux)); err != nil {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg *config.Config) (storage.Provider, error) {
	switch cfg.StorageBackend {
	case config.BackendDrive:
		credentials, err := cfg.DecodeCredentials()
		if err != nil {
			return nil, err
		}
		return storage.NewDriveProvider(ctx, credentials, cfg.SharedFolderID)
	case config.BackendMinio:
		return storage.NewMinioProvider(cfg)
	case config.BackendMemory:
		return storage.NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
