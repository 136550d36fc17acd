package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	RedisAddr               string
	RedisPassword           string
	JWTSecret               string
	FirebaseCredentialsPath string
	PageSize                int
	FeedCacheTTL            time.Duration
	StrictUnfollow          bool
}

// Load builds the Config from the environment. A .env file in the working
// directory is merged in first, so it must be read before any getEnv call.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWD", ""),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PageSize:                getEnvInt("PAGE_SIZE", 10),
		FeedCacheTTL:            time.Duration(getEnvInt("FEED_CACHE_TTL_SECONDS", 20)) * time.Second,
		StrictUnfollow:          getEnvBool("STRICT_UNFOLLOW", true),
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
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
