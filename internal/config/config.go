package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
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

type APIKeys struct {
	DeepSeek     string
	CaptionTopic string // async caption generation topic
}

type AIConfig struct {
	LLMProvider string // "deepseek" or "ollama"
	LLMModel    string // e.g. "deepseek-reasoner", "qwen2.5"
	BaseURL     string // provider endpoint
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			DeepSeek:     getEnv("DEEPSEEK_API_KEY", ""),
			CaptionTopic: getEnv("TOPIC_CAPTION_TOPIC_NAME", "GENERATE_TOPIC_CAPTION"),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "deepseek"),
			LLMModel:    getEnv("LLM_MODEL", "deepseek-reasoner"),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.deepseek.com"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
