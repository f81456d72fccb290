package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via TOKEN_STORE.
const (
	StoreMongo = "mongo"
	StoreRedis = "redis"
)

// GoogleScopes is the full scope set requested at login, covering every
// integrated product. Keep is excluded: its API is restricted to Google
// Workspace accounts.
var GoogleScopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/contacts.readonly",
	"https://www.googleapis.com/auth/contacts",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/photoslibrary.readonly",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Config contains runtime configuration values.
type Config struct {
	Environment        string
	HTTPPort           string
	BackendURL         string
	FrontendURL        string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleMapsAPIKey   string
	GeminiAPIKey       string
	GeminiModel        string
	AdminToken         string
	TokenStore         string
	MongoURI           string
	MongoDatabase      string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	StoreTimeout       time.Duration
	RefreshTimeout     time.Duration
	CORSAllowedOrigins []string
}

// RedirectURI is the OAuth callback registered with the provider.
func (c Config) RedirectURI() string {
	return c.BackendURL + "/auth/callback"
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:        getEnv("APP_ENV", "development"),
		HTTPPort:           getEnv("PORT", "8080"),
		BackendURL:         getEnv("BACKEND_URL", "http://localhost:8080"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleMapsAPIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		TokenStore:         getEnv("TOKEN_STORE", StoreMongo),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "google_services"),
		RedisAddr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0),
		StoreTimeout:       getDuration("STORE_TIMEOUT", 5*time.Second),
		RefreshTimeout:     getDuration("REFRESH_TIMEOUT", 10*time.Second),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	if cfg.GoogleClientID == "" {
		return Config{}, fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	if cfg.GoogleClientSecret == "" {
		return Config{}, fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}
	if cfg.TokenStore != StoreMongo && cfg.TokenStore != StoreRedis {
		return Config{}, fmt.Errorf("TOKEN_STORE must be %q or %q", StoreMongo, StoreRedis)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		var cleaned []string
		for _, p := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return def
}
