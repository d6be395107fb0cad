package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Booking   BookingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IngestTopic        string
	CorpusDir          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	StaffEmail string
}

type AIConfig struct {
	OllamaBaseURL  string
	EmbeddingModel string
	LLMProvider    string // "ollama" for now
	LLMModel       string // e.g. "llama3", "qwen2.5"
	RerankerURL    string
	RerankEnabled  bool
}

type RetrievalConfig struct {
	RelevanceThreshold  float64
	CandidateMultiplier int
	FAQContextChunks    int
	ChunkSize           int
	ChunkOverlap        int
}

type BookingConfig struct {
	SeedWindowDays    int
	SessionIdleTTLMin int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IngestTopic:        getEnv("INGEST_TOPIC_NAME", "INGEST_CORPUS"),
			CorpusDir:          getEnv("CORPUS_DIR", "data/clean_text"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Clinic Assistant"),
			StaffEmail: getEnv("BOOKING_NOTIFY_EMAIL", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			RerankerURL:    getEnv("RERANKER_URL", "http://localhost:8787"),
			RerankEnabled:  getEnvAsBool("RERANKER_ENABLED", false),
		},
		Retrieval: RetrievalConfig{
			RelevanceThreshold:  getEnvAsFloat("RELEVANCE_THRESHOLD", -2.5),
			CandidateMultiplier: getEnvAsInt("CANDIDATE_MULTIPLIER", 4),
			FAQContextChunks:    getEnvAsInt("FAQ_CONTEXT_CHUNKS", 20),
			ChunkSize:           getEnvAsInt("CHUNK_SIZE", 400),
			ChunkOverlap:        getEnvAsInt("CHUNK_OVERLAP", 200),
		},
		Booking: BookingConfig{
			SeedWindowDays:    getEnvAsInt("SLOT_SEED_WINDOW_DAYS", 14),
			SessionIdleTTLMin: getEnvAsInt("SESSION_IDLE_TTL_MINUTES", 60),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
