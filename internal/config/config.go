package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret      string
	TokenExpiresIn time.Duration
}

type StorageConfig struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	// Signed URLs are cached for slightly less than their lifetime so a
	// cached URL never outlives the storage-side expiry.
	SignedUrlTTL time.Duration
}

type UploadConfig struct {
	MaxFileSizeBytes int64
	// Poppler renders pages at this DPI before vision extraction.
	RenderDPI int
}

type AIConfig struct {
	LLMProvider       string // "openrouter", "gemini" or "ollama"
	LLMModel          string
	VisionModel       string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GoogleGeminiKey   string
	OllamaBaseURL     string
	OllamaModel       string
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	EmbeddingTopic    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:      getEnv("JWT_SECRET", ""),
			TokenExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 72*time.Hour),
		},
		Storage: StorageConfig{
			BaseURL:      getEnv("STORAGE_BASE_URL", ""),
			ServiceKey:   getEnv("STORAGE_SERVICE_KEY", ""),
			Bucket:       getEnv("STORAGE_BUCKET", "study-documents"),
			SignedUrlTTL: getEnvAsDuration("STORAGE_SIGNED_URL_TTL", time.Hour),
		},
		Upload: UploadConfig{
			MaxFileSizeBytes: getEnvAsInt64("UPLOAD_MAX_FILE_SIZE_BYTES", 50*1024*1024),
			RenderDPI:        getEnvAsInt("EXTRACTION_RENDER_DPI", 150),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:          getEnv("LLM_MODEL", "google/gemini-2.0-flash-001"),
			VisionModel:       getEnv("VISION_MODEL", "google/gemini-2.0-flash-001"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			GoogleGeminiKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("LLM_OLLAMA_MODEL", "llama3"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			EmbeddingTopic:    getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CONTENT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
