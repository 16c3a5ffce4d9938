package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Ai    AIConfig
	Store StoreConfig
	Data  DataConfig
	Keys  APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AIConfig struct {
	EmbeddingProvider string // "huggingface" or "ollama"
	EmbeddingModel    string
	LLMProvider       string // "huggingface" or "ollama"
	LLMModel          string
	VisionModel       string
	OllamaBaseURL     string
	HFBaseURL         string
}

type StoreConfig struct {
	Backend          string // "json", "sqlite", "qdrant" or "pgvector"
	JSONPath         string
	SQLitePath       string
	QdrantURL        string
	QdrantCollection string
	PostgresDSN      string
	Dimension        int
	TopK             int
}

type DataConfig struct {
	DocsDir        string
	OrdersCSV      string
	CustomersCSV   string
	PredictionsLog string
}

type APIKeys struct {
	HuggingFace string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "huggingface"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
			LLMProvider:       getEnv("LLM_PROVIDER", "huggingface"),
			LLMModel:          getEnv("LLM_MODEL", "meta-llama/Llama-3.2-3B-Instruct"),
			VisionModel:       getEnv("VISION_MODEL", "Qwen/Qwen2.5-VL-7B-Instruct"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HFBaseURL:         getEnv("HF_BASE_URL", ""),
		},
		Store: StoreConfig{
			Backend:          getEnv("VECTOR_BACKEND", "json"),
			JSONPath:         getEnv("VECTOR_JSON_PATH", "data/store/docs.json"),
			SQLitePath:       getEnv("VECTOR_SQLITE_PATH", "data/store/docs.db"),
			QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantCollection: getEnv("QDRANT_COLLECTION", "docs"),
			PostgresDSN:      getEnv("PGVECTOR_DSN", ""),
			Dimension:        getEnvAsInt("EMBEDDING_DIMENSION", 384),
			TopK:             getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
		Data: DataConfig{
			DocsDir:        getEnv("DOCS_DIR", "data/docs"),
			OrdersCSV:      getEnv("ORDERS_CSV", "data/orders.csv"),
			CustomersCSV:   getEnv("CUSTOMERS_CSV", "data/customers.csv"),
			PredictionsLog: getEnv("PREDICTIONS_LOG", "data/predictions.jsonl"),
		},
		Keys: APIKeys{
			HuggingFace: getEnv("HF_API_KEY", ""),
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
