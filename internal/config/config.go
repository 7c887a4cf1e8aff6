package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is shared by both binaries. The page service reads ListenAddr,
// APIBaseURL and ImageBaseURL. The data service reads APIListenAddr, DBPath
// and SeedFixtures.
type Config struct {
	ListenAddr    string
	APIListenAddr string
	APIBaseURL    string
	ImageBaseURL  string
	DBPath        string
	SeedFixtures  bool
	LogLevel      string
	LogFormat     string
	LogFile       string
}

// Load reads the environment. If envFile names an existing dotenv file its
// values are loaded first; variables already set in the process win.
func Load(envFile string) *Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8000"),
		APIListenAddr: getEnv("API_LISTEN_ADDR", ":1337"),
		APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:1337"), "/"),
		ImageBaseURL:  strings.TrimRight(getEnv("IMAGE_BASE_URL", "/img"), "/"),
		DBPath:        getEnv("DB_PATH", "/data/restaurants.db"),
		SeedFixtures:  getBool("SEED_FIXTURES", true),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultVal
	}
}
