package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	LISTEN_ADDR     string
	API_BASE_URL    string
	NBRB_URL        string
	DATABASE_URL    string
	PROFILE_DB_PATH string
	ES_URL          string
	ES_USER         string
	ES_PASSWORD     string
	ES_INDEX        string
	KAFKA_ADDRESS   string
	LOG_LEVEL       string
	REFRESH_SECONDS int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		LISTEN_ADDR:     getenv("LISTEN_ADDR", ":8080"),
		API_BASE_URL:    getenv("API_BASE_URL", "http://127.0.0.1:8000/"),
		NBRB_URL:        os.Getenv("NBRB_URL"),
		DATABASE_URL:    os.Getenv("DATABASE_URL"),
		PROFILE_DB_PATH: getenv("PROFILE_DB_PATH", "teplomarket.db"),
		ES_URL:          os.Getenv("ES_URL"),
		ES_USER:         os.Getenv("ES_USER"),
		ES_PASSWORD:     os.Getenv("ES_PASSWORD"),
		ES_INDEX:        getenv("ES_INDEX", "products"),
		KAFKA_ADDRESS:   os.Getenv("KAFKA_ADDRESS"),
		LOG_LEVEL:       os.Getenv("LOG_LEVEL"),
		REFRESH_SECONDS: getenvInt("CATALOG_REFRESH_SECONDS", 60),
	}

	return config, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// OpenDB opens the profile store database: postgres when DATABASE_URL
// is set (several storefront processes sharing one profile), otherwise
// a local sqlite file.
func (c *Config) OpenDB() (*gorm.DB, error) {
	if c.DATABASE_URL != "" {
		db, err := gorm.Open(postgres.Open(c.DATABASE_URL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
		}
		return db, nil
	}
	db, err := gorm.Open(sqlite.Open(c.PROFILE_DB_PATH), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл профиля: %w", err)
	}
	return db, nil
}
