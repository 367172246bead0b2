package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI      string
	MongoDB       string
	Port          string
	SnapshotDir   string
	ScrapeTimeout time.Duration
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = getenv("MONGO_URI", "mongodb://localhost:27017/")
	MongoDB = getenv("MONGO_DB", "catalogue")
	Port = getenv("PORT", "8092")
	SnapshotDir = getenv("SNAPSHOT_DIR", "products")

	ScrapeTimeout = 30 * time.Second
	if v := os.Getenv("SCRAPE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ScrapeTimeout = time.Duration(secs) * time.Second
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
