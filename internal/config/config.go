package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"budgeteer/internal/severity"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Reporting
	LatestLimit       int
	PageSize          int
	SeverityBandsFile string
	SeverityBands     []severity.Band
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgeteer"),
		DBPassword: getEnv("DB_PASSWORD", "budgeteer"),
		DBName:     getEnv("DB_NAME", "budgeteer"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/budgeteer.db"),

		// Reporting
		SeverityBandsFile: getEnv("SEVERITY_BANDS_FILE", ""),
	}

	var err error
	if config.LatestLimit, err = getEnvInt("LATEST_LIMIT", 10); err != nil {
		return nil, err
	}
	if config.PageSize, err = getEnvInt("PAGE_SIZE", 10); err != nil {
		return nil, err
	}

	config.SeverityBands = severity.DefaultBands()
	if config.SeverityBandsFile != "" {
		bands, err := LoadSeverityBands(config.SeverityBandsFile)
		if err != nil {
			return nil, err
		}
		config.SeverityBands = bands
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %q: must be a number between 1 and 65535", c.Port))
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER %q: must be postgres or sqlite", c.DBDriver))
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		problems = append(problems, "SQLITE_PATH is required when DB_DRIVER is sqlite")
	}
	if c.LatestLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid LATEST_LIMIT %d: must be positive", c.LatestLimit))
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		problems = append(problems, fmt.Sprintf("invalid PAGE_SIZE %d: must be between 1 and 100", c.PageSize))
	}
	if len(c.SeverityBands) == 0 {
		problems = append(problems, "severity band table is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// severityFile is the on-disk layout of SEVERITY_BANDS_FILE.
type severityFile struct {
	Bands []severity.Band `yaml:"bands"`
}

// LoadSeverityBands reads a YAML band table. Entries are kept in file order;
// they must be listed from the highest threshold to the lowest.
func LoadSeverityBands(path string) ([]severity.Band, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading severity bands: %w", err)
	}
	var f severityFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing severity bands: %w", err)
	}
	if len(f.Bands) == 0 {
		return nil, fmt.Errorf("severity bands file %s defines no bands", path)
	}
	for i, b := range f.Bands {
		if b.Label == "" {
			return nil, fmt.Errorf("severity band %d has no label", i)
		}
	}
	return f.Bands, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
