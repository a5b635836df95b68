package config

import "os"

type Config struct {
	Port            string
	Env             string
	StorageBackend  string
	StorageDir      string
	PostgresConnStr string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	SeedData        bool
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
		StorageDir:      getEnv("STORAGE_DIR", "./data"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "gameblog"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SeedData:        getEnv("SEED_DATA", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
