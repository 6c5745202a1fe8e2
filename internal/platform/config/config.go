package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa todo lo que se lee del entorno.
// Los valores de matching (MinScore/ScanTopN/TriggerTopN) son política de negocio,
// con defaults 50 / 5 / 10.
type Config struct {
	Port string

	DBDSN         string
	DBAutoMigrate bool

	LogLevel  string
	LogFormat string
	AppName   string

	Matching Matching

	RabbitMQURL      string
	RabbitMQExchange string

	MinIO MinIO

	RedisURL string

	OdinBaseURL string
	OdinAPIKey  string

	AccountsBaseURL string
	AccountsAPIKey  string
	AllowAllRoles   bool
}

type Matching struct {
	MinScore     float64
	ScanTopN     int
	TriggerTopN  int
	ScanInterval time.Duration // 0 = sin re-scan periódico
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	DefaultMinScore    = 50.0
	DefaultScanTopN    = 5
	DefaultTriggerTopN = 10
)

// Load lee .env si existe (no es error que falte) y luego el entorno.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv arma la config desde un lookup arbitrario (tests).
func FromEnv(getenv func(string) string) Config {
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	port := get("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:          port,
		DBDSN:         get("DB_DSN"),
		DBAutoMigrate: parseBool(get("DB_AUTO_MIGRATE"), false),

		LogLevel:  get("LOG_LEVEL"),
		LogFormat: get("LOG_FORMAT"),
		AppName:   orDefault(get("APP_NAME"), "pet-lost-found"),

		Matching: Matching{
			MinScore:     parseFloat(get("MATCH_MIN_SCORE"), DefaultMinScore),
			ScanTopN:     parseInt(get("MATCH_SCAN_TOP_N"), DefaultScanTopN),
			TriggerTopN:  parseInt(get("MATCH_TRIGGER_TOP_N"), DefaultTriggerTopN),
			ScanInterval: parseDuration(get("MATCH_SCAN_INTERVAL"), 0),
		},

		RabbitMQURL:      get("RABBITMQ_URL"),
		RabbitMQExchange: orDefault(get("RABBITMQ_EXCHANGE"), "lostfound.events"),

		MinIO: MinIO{
			Endpoint:  get("MINIO_ENDPOINT"),
			AccessKey: get("MINIO_ACCESS_KEY"),
			SecretKey: get("MINIO_SECRET_KEY"),
			Bucket:    orDefault(get("MINIO_BUCKET"), "lost-found-images"),
			UseSSL:    parseBool(get("MINIO_USE_SSL"), false),
		},

		RedisURL: get("REDIS_URL"),

		OdinBaseURL: get("ODIN_BASE_URL"),
		OdinAPIKey:  get("ODIN_API_KEY"),

		AccountsBaseURL: get("ACCOUNTS_BASE_URL"),
		AccountsAPIKey:  get("ACCOUNTS_API_KEY"),
		AllowAllRoles:   parseBool(get("ALLOW_ALL_ROLES"), false),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parseInt(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseFloat(v string, def float64) float64 {
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 || f > 100 {
		return def
	}
	return f
}

func parseDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
