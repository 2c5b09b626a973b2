package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// API Settings
	APITitle   string
	APIVersion string
	APIPrefix  string
	Port       string

	// CORS
	CORSOrigins []string

	// Vector Store Backend: "pgvector" or "qdrant"
	VectorBackend  string
	CollectionName string

	// PostgreSQL (used when VectorBackend = "pgvector")
	PostgresURI string

	// Qdrant (used when VectorBackend = "qdrant")
	QdrantAddr string

	// Embeddings
	EmbeddingProvider   string // "custom" or "vertex"
	EmbeddingServiceURL string // For custom provider
	EmbeddingDimensions int

	// Vertex AI (when EmbeddingProvider = "vertex")
	GCPProjectID string
	GCPLocation  string
	VertexModel  string

	// Cross-encoder reranker
	RerankerURL     string
	RerankerEnabled bool
	RetrievalFactor float64

	// Indexing
	AssetsDir          string
	EmbedWithReference bool

	// Answer generation
	GeminiModel string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance
func GetConfig() *Config {
	once.Do(func() {
		config = loadConfig()
	})
	return config
}

func loadConfig() *Config {
	return &Config{
		APITitle:    getEnv("API_TITLE", "Scripture Search Engine"),
		APIVersion:  getEnv("API_VERSION", "1.0.0"),
		APIPrefix:   getEnv("API_PREFIX", "/api/v1"),
		Port:        getEnv("PORT", "8081"),
		CORSOrigins: parseCORSOrigins(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),

		// Vector store backend configuration
		VectorBackend:  getEnv("VECTOR_BACKEND", "pgvector"), // "pgvector" or "qdrant"
		CollectionName: getEnv("COLLECTION_NAME", "scriptures"),
		PostgresURI:    getEnv("POSTGRES_URI", ""),
		QdrantAddr:     getEnv("QDRANT_ADDR", "localhost:6334"),

		// Embeddings
		EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "custom"),
		EmbeddingServiceURL: getEnv("EMBEDDING_SERVICE_URL", "http://localhost:8001"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 768),

		// Vertex AI
		GCPProjectID: getEnv("GCP_PROJECT_ID", ""),
		GCPLocation:  getEnv("GCP_LOCATION", "us-central1"),
		VertexModel:  getEnv("VERTEX_MODEL", "gemini-embedding-001"),

		// Reranker
		RerankerURL:     getEnv("RERANKER_URL", "http://localhost:8002"),
		RerankerEnabled: getEnvBool("RERANKER_ENABLED", true),
		RetrievalFactor: getEnvFloat("RETRIEVAL_FACTOR", 3.0),

		// Indexing
		AssetsDir:          getEnv("ASSETS_DIR", "assets"),
		EmbedWithReference: getEnvBool("EMBED_WITH_REFERENCE", false),

		// Answer generation
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return i
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return f
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return b
	}
	return defaultValue
}

func parseCORSOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
