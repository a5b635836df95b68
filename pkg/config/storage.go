package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pixelforo/gameblog/internal/storage"
	"github.com/pixelforo/gameblog/internal/storage/file"
	"github.com/pixelforo/gameblog/internal/storage/memory"
	"github.com/pixelforo/gameblog/internal/storage/mongo"
	"github.com/pixelforo/gameblog/internal/storage/postgres"
)

// Storage bundles the validated store with the cleanup for its backend.
type Storage struct {
	Store *storage.Store
	close func() error
}

// InitStorage loads env configuration and opens the backend named by
// STORAGE_BACKEND, wrapping it in the validated adapter.
func InitStorage(cfg *Config) (*Storage, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	switch cfg.StorageBackend {
	case "memory":
		log.Println("Using in-memory storage backend.")
		return &Storage{Store: storage.New(memory.New())}, nil

	case "file":
		backend, err := file.Open(cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open file storage: %w", err)
		}
		log.Printf("Using file storage backend at %s.", cfg.StorageDir)
		return &Storage{Store: storage.New(backend)}, nil

	case "postgres":
		if cfg.PostgresConnStr == "" {
			return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
		backend, err := postgres.Open(cfg.PostgresConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Println("Successfully connected to PostgreSQL!")
		return &Storage{Store: storage.New(backend), close: backend.Close}, nil

	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable not set")
		}
		backend, err := mongo.Open(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		log.Println("Successfully connected to MongoDB!")
		return &Storage{Store: storage.New(backend), close: backend.Close}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// CloseStorage releases the backend connection when it holds one.
func (s *Storage) CloseStorage() {
	if s.close == nil {
		return
	}
	if err := s.close(); err != nil {
		log.Printf("Error closing storage backend: %v\n", err)
	} else {
		log.Println("Storage backend closed.")
	}
}
