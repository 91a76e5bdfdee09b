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
	Keys     APIKeys
	Ai       AIConfig
	Rag      RAGConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IngestTopic        string
	IngestMaxRetries   int
	IngestRetryDelay   time.Duration
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "memory"
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Anthropic    string
	HuggingFace  string
	Jina         string
	JwtSecret    string
}

type AIConfig struct {
	LLMProvider         string // "gemini", "anthropic", "ollama", "huggingface"
	LLMModel            string
	LLMBaseURL          string
	LLMTimeout          time.Duration
	EmbeddingProvider   string // "gemini", "ollama", "jina"
	EmbeddingModel      string
	EmbeddingTimeout    time.Duration
	OllamaBaseURL       string
	PipelineTemperature float64
	FeedbackTemperature float64
	GroundedTemperature float64
	PipelineParallel    bool
}

type RAGConfig struct {
	VectorIndex    string // "pgvector" or "chromem"
	ChromemPath    string
	TopK           int
	ChunkSize      int
	ChunkOverlap   int
	EmbeddingCache string // "memory", "redis" or "none"
	CacheTTL       time.Duration
	IndexTimeout   time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IngestTopic:        getEnv("INGEST_TOPIC_NAME", "INGEST_DOCUMENT"),
			IngestMaxRetries:   getEnvAsInt("INGEST_MAX_RETRIES", 3),
			IngestRetryDelay:   getEnvAsDuration("INGEST_RETRY_DELAY", time.Second),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("STORE_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_API_KEY", ""),
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			JwtSecret:    getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:            getEnv("LLM_MODEL", "gemini-2.0-flash"),
			LLMBaseURL:          getEnv("LLM_BASE_URL", ""),
			LLMTimeout:          getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", ""),
			EmbeddingTimeout:    getEnvAsDuration("EMBEDDING_TIMEOUT", 30*time.Second),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			PipelineTemperature: getEnvAsFloat("PIPELINE_TEMPERATURE", 0.7),
			FeedbackTemperature: getEnvAsFloat("FEEDBACK_TEMPERATURE", 0.7),
			GroundedTemperature: getEnvAsFloat("GROUNDED_TEMPERATURE", 0),
			PipelineParallel:    getEnvAsBool("PIPELINE_PARALLEL", false),
		},
		Rag: RAGConfig{
			VectorIndex:    getEnv("VECTOR_INDEX", "pgvector"),
			ChromemPath:    getEnv("CHROMEM_PATH", "data/chromem"),
			TopK:           getEnvAsInt("RAG_TOP_K", 4),
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 100),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 20),
			EmbeddingCache: getEnv("EMBEDDING_CACHE", "memory"),
			CacheTTL:       getEnvAsDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),
			IndexTimeout:   getEnvAsDuration("INDEX_TIMEOUT", 30*time.Second),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "ai-health-assistant-backend"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

// LLMKey returns the API key matching the configured LLM provider.
func (c *Config) LLMKey() string {
	switch c.Ai.LLMProvider {
	case "anthropic", "claude":
		return c.Keys.Anthropic
	case "huggingface":
		return c.Keys.HuggingFace
	default:
		return c.Keys.GoogleGemini
	}
}

// EmbeddingKey returns the API key matching the configured embedding provider.
func (c *Config) EmbeddingKey() string {
	if c.Ai.EmbeddingProvider == "jina" {
		return c.Keys.Jina
	}
	return c.Keys.GoogleGemini
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
