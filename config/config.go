package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backend names accepted in STORAGE_BACKEND
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config carries every setting the service reads from the environment
type Config struct {
	Port           string
	StorageBackend string
	DataDir        string
	RedisAddress   string
	RedisPassword  string
	MongoURI       string
	JWTSecret      string
	AdminEmail     string
	AdminPassword  string
	IssueRateLimit int
}

// Load reads the environment into a Config. Only JWT_SECRET is mandatory;
// everything else has a development default.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendFile),
		DataDir:        getEnv("DATA_DIR", "./data"),
		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		IssueRateLimit: 5,
	}

	if v := os.Getenv("ISSUE_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return Config{}, fmt.Errorf("invalid ISSUE_RATE_LIMIT %q", v)
		}
		cfg.IssueRateLimit = limit
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("please define the JWT_SECRET environment variable")
	}

	switch cfg.StorageBackend {
	case BackendFile:
	case BackendRedis:
		if cfg.RedisAddress == "" {
			return Config{}, fmt.Errorf("STORAGE_BACKEND=redis requires REDIS_ADDRESS")
		}
	case BackendMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("STORAGE_BACKEND=mongo requires MONGODB_URI")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
