package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DBDSN          string
	CatalogBaseURL string
	SyncInterval   time.Duration
	LogFile        string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "comstore.db" // sqlite file in project root
	}
	base := os.Getenv("CATALOG_BASE_URL")
	if base == "" {
		base = "https://dummyjson.com"
	}
	interval := time.Hour
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("[config] bad SYNC_INTERVAL %q, keeping %s: %v", v, interval, err)
		} else {
			interval = d
		}
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:           port,
		DBDriver:       driver,
		DBDSN:          dsn,
		CatalogBaseURL: base,
		SyncInterval:   interval,
		LogFile:        logFile,
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s CATALOG_BASE_URL=%s SYNC_INTERVAL=%s",
		cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.CatalogBaseURL, cfg.SyncInterval)
	return cfg
}
