package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTokenTTL   time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	JudgeProblemsURL    string
	JudgeSubmissionsURL string
	JudgeAccessToken    string

	RefreshStore  string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SubmissionPollInterval time.Duration
	SubmissionMaxPolls     int
	DefaultCompilerID      int

	CORSOrigins string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("PORT", "3000"),
		JWTAccessSecret:  []byte(getEnv("JWT_ACCESS_SECRET", "accesssecret")),
		JWTRefreshSecret: []byte(getEnv("JWT_REFRESH_SECRET", "refreshsecret")),
		AccessTokenTTL:   time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 10)) * time.Minute,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "judge_gateway_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		JudgeProblemsURL:    getEnv("JUDGE_PROBLEMS_URL", "https://problems.sphere-engine.com/api/v3/problems"),
		JudgeSubmissionsURL: getEnv("JUDGE_SUBMISSIONS_URL", "https://problems.sphere-engine.com/api/v3/submissions"),
		JudgeAccessToken:    getEnv("JUDGE_ACCESS_TOKEN", ""),

		RefreshStore:  getEnv("REFRESH_STORE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SubmissionPollInterval: time.Duration(getEnvAsInt("SUBMISSION_POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		SubmissionMaxPolls:     getEnvAsInt("SUBMISSION_MAX_POLLS", 60),
		DefaultCompilerID:      getEnvAsInt("DEFAULT_COMPILER_ID", 1),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}

	// A full connection URL wins over the assembled parts.
	if url, ok := os.LookupEnv("DATABASE_URL"); ok && url != "" {
		AppConfig.DBConnStr = url
	} else {
		AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
			" port=" + AppConfig.DBPort +
			" user=" + AppConfig.DBUser +
			" password=" + AppConfig.DBPassword +
			" dbname=" + AppConfig.DBName +
			" sslmode=" + AppConfig.DBSslMode
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
