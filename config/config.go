package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config application settings
type Config struct {
	Port                      int
	MongoURI                  string
	MongoDB                   string
	JWTKey                    string
	Debug                     bool
	LogLevel                  string
	CORSOrigins               []string
	DBTimeout                 time.Duration
	SuggestionLimit           int
	OperationLogRetentionDays int
}

// LoadConfig loads configuration from the environment, falling back to an
// optional .env file in the working directory.
func LoadConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017/crm")
	v.SetDefault("MONGO_DB", "crm")
	v.SetDefault("JWT_KEY", "your-secret-key") // must be overridden outside development
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_TIMEOUT", "5s")
	v.SetDefault("SUGGESTION_LIMIT", 3)
	v.SetDefault("OPERATION_LOG_RETENTION_DAYS", 90)

	return &Config{
		Port:                      v.GetInt("PORT"),
		MongoURI:                  v.GetString("MONGO_URI"),
		MongoDB:                   v.GetString("MONGO_DB"),
		JWTKey:                    v.GetString("JWT_KEY"),
		Debug:                     v.GetString("GIN_MODE") == "debug",
		LogLevel:                  v.GetString("LOG_LEVEL"),
		CORSOrigins:               splitList(v.GetString("CORS_ORIGINS")),
		DBTimeout:                 v.GetDuration("DB_TIMEOUT"),
		SuggestionLimit:           v.GetInt("SUGGESTION_LIMIT"),
		OperationLogRetentionDays: v.GetInt("OPERATION_LOG_RETENTION_DAYS"),
	}
}

// splitList splits a comma separated setting
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
