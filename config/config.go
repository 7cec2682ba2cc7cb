package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// PDF renderer tiers
const (
	PDFRendererBuiltin = "builtin" // deterministic built-in-font renderer
	PDFRendererChrome  = "chrome"  // rich HTML rendering through headless Chrome
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// PDF generation
	PDFRenderer string // builtin or chrome
	PDFFontDir  string // directory with Regular.ttf/Bold.ttf for the embedded-font tier
	ChromePath  string // Chrome executable for the chrome renderer (headless-shell in Docker)
	// Other
	AllowedOrigins []string
	AppURL         string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	renderer := getEnv("PDF_RENDERER", PDFRendererBuiltin)
	if renderer != PDFRendererBuiltin && renderer != PDFRendererChrome {
		log.Printf("[WARNING] Unknown PDF_RENDERER %q, falling back to %q", renderer, PDFRendererBuiltin)
		renderer = PDFRendererBuiltin
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "db/app.db"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		PDFRenderer:    renderer,
		PDFFontDir:     getEnv("PDF_FONT_DIR", ""),
		ChromePath:     getEnv("CHROME_PATH", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:         getEnv("APP_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}
