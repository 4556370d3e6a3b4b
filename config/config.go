package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config.yaml"

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after loading
	} `yaml:"server"`
	LLM struct {
		Provider       string  `yaml:"provider"` // gemini, openai, static
		Model          string  `yaml:"model"`
		APIKey         string  `yaml:"api_key"`
		BaseURL        string  `yaml:"base_url"`
		Temperature    float64 `yaml:"temperature"`
		CallTimeoutSec int     `yaml:"call_timeout_sec"` // per model call; 0 falls back to the default
	} `yaml:"llm"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"` // text, json, pretty
		Output   string `yaml:"output"` // stdout, file, both
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Enabled         bool   `yaml:"enabled"`
		Driver          string `yaml:"driver"` // mysql, sqlite, postgres
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       *bool  `yaml:"parse_time"`        // mysql only; unset means true
		Path            string `yaml:"path"`              // sqlite file, ":memory:" allowed
		DSN             string `yaml:"-"`                 // computed after loading unless DB_DSN is set
		MaxOpenConns    int    `yaml:"max_open_conns"`    // pool size
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // idle pool size
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // minutes
		ConnectRetries  int    `yaml:"connect_retries"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`
	Batch struct {
		CooldownMS   int  `yaml:"cooldown_ms"` // delay after each assembled record
		Offset       int  `yaml:"offset"`
		Limit        int  `yaml:"limit"` // 0 = all records
		SkipExisting bool `yaml:"skip_existing"`
	} `yaml:"batch"`
	Input struct {
		File      string `yaml:"file"`
		StripHTML bool   `yaml:"strip_html"`
	} `yaml:"input"`
	Output struct {
		File  string `yaml:"file"`
		Print bool   `yaml:"print"`
	} `yaml:"output"`
	Scheduler struct {
		Enabled          bool `yaml:"enabled"`
		CheckIntervalSec int  `yaml:"check_interval_sec"`
		Hour             int  `yaml:"hour"`
		Minute           int  `yaml:"minute"`
	} `yaml:"scheduler"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`
		ResponseSec int `yaml:"response_sec"`
		IdleSec     int `yaml:"idle_sec"`
	} `yaml:"timeouts"`
}

// Load reads .env, then config.yaml from the working directory, then
// environment overrides. A missing config.yaml is not an error.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	cfg, err := LoadFile(defaultConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error loading %s: %v, falling back to environment variables", defaultConfigFile, err)
		}
		return loadFromEnv()
	}
	log.Printf("Loading configuration from %s", defaultConfigFile)
	return cfg
}

// LoadFile reads the YAML file at path and applies environment overrides and
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func loadFromEnv() *Config {
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.LLM.Provider = os.Getenv("LLM_PROVIDER")
	cfg.LLM.Model = os.Getenv("LLM_MODEL")
	cfg.LLM.BaseURL = os.Getenv("LLM_BASE_URL")
	cfg.DB.Driver = os.Getenv("DB_DRIVER")
	cfg.Input.File = os.Getenv("INPUT_FILE")

	applyEnv(&cfg)
	applyDefaults(&cfg)

	log.Println("Configuration loaded from environment variables, some settings may be missing")
	return &cfg
}

// applyEnv overrides secrets from the environment.
func applyEnv(cfg *Config) {
	if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
		cfg.DB.Username = envUsername
	}
	if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
		cfg.DB.Password = envPassword
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
		cfg.DB.Enabled = true
	}

	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if cfg.LLM.APIKey == "" && (cfg.LLM.Provider == "" || strings.EqualFold(cfg.LLM.Provider, "gemini")) {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	cfg.LLM.APIKey = resolveEnvRef(cfg.LLM.APIKey)
}

// resolveEnvRef expands a value of the form ${NAME}.
func resolveEnvRef(v string) string {
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
		return os.Getenv(v[2 : len(v)-1])
	}
	return v
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	cfg.Server.Addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "gemini"
	}
	if cfg.LLM.CallTimeoutSec <= 0 {
		cfg.LLM.CallTimeoutSec = 60
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Batch.CooldownMS < 0 {
		cfg.Batch.CooldownMS = 0
	}

	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "mysql"
	}
	if cfg.DB.ParseTime == nil {
		parseTime := true
		cfg.DB.ParseTime = &parseTime
	}
	if cfg.DB.ConnectRetries <= 0 {
		cfg.DB.ConnectRetries = 3
	}
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = buildDSN(cfg)
	}

	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
}

// buildDSN computes the driver specific DSN from the database section.
func buildDSN(cfg *Config) string {
	switch strings.ToLower(cfg.DB.Driver) {
	case "sqlite", "sqlite3":
		if cfg.DB.Path == "" {
			return "profiles.db"
		}
		return cfg.DB.Path
	case "postgres":
		if cfg.DB.Host == "" {
			return ""
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.DB.Username, cfg.DB.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.DB.Host, cfg.DB.Port),
			Path:     "/" + cfg.DB.Database,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		if cfg.DB.Host == "" {
			return ""
		}
		if cfg.DB.Charset == "" {
			cfg.DB.Charset = "utf8mb4"
		}
		parseTime := ""
		if cfg.DB.ParseTime != nil && *cfg.DB.ParseTime {
			parseTime = "&parseTime=true"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			cfg.DB.Username,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Database,
			cfg.DB.Charset,
			parseTime)
	}
}
