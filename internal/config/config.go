package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultJobsAPIURL = "https://testapi.getlokalapp.com/common/jobs"

// Config holds every setting the binaries read from the environment.
type Config struct {
	Port    string
	GinMode string

	JobsAPIURL     string
	FetchTimeout   time.Duration
	FetchRateLimit float64
	// MaxPages caps pagination; 0 means stop only when the API returns an
	// empty page.
	MaxPages int

	StorageDriver string // sqlite | postgres | memory
	SQLitePath    string
	DatabaseURL   string

	LoadTrigger     string // swipe | scroll
	ScrollThreshold int
	SwipeFeedback   time.Duration

	CORSOrigins []string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️  No .env file found, using process environment")
	}

	return &Config{
		Port:    getString("PORT", "8080"),
		GinMode: getString("GIN_MODE", ""),

		JobsAPIURL:     getString("JOBS_API_URL", DefaultJobsAPIURL),
		FetchTimeout:   getDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchRateLimit: getFloat("FETCH_RATE_LIMIT", 2),
		MaxPages:       getInt("MAX_PAGES", 0),

		StorageDriver: strings.ToLower(getString("STORAGE_DRIVER", "sqlite")),
		SQLitePath:    getString("SQLITE_PATH", "data/jobswipe.db"),
		DatabaseURL:   getString("DATABASE_URL", "host=localhost user=postgres password=password dbname=jobswipe port=5432 sslmode=disable"),

		LoadTrigger:     strings.ToLower(getString("LOAD_TRIGGER", "swipe")),
		ScrollThreshold: getInt("SCROLL_THRESHOLD", 50),
		SwipeFeedback:   getDuration("SWIPE_FEEDBACK", time.Second),

		CORSOrigins: getList("CORS_ORIGINS"),
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
