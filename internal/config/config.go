package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger   LoggerConfig   `yaml:"logger"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
}

type LoggerConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	Target   string `yaml:"target" env:"LOG_TARGET" envDefault:"stdout"`
	Filename string `yaml:"filename" env:"LOG_FILE"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" envDefault:"127.0.0.1:9000"`
	StaticDir       string        `yaml:"static_dir" env:"STATIC_DIR" envDefault:"static"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envDefault:"30s"`
}

// DatabaseConfig параметры пула соединений.
// Port без default: он зависит от драйвера и подставляется в connectors
type DatabaseConfig struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER" envDefault:"mysql"`
	Host       string `yaml:"host" env:"DB_HOST" envDefault:"localhost"`
	Port       int    `yaml:"port" env:"DB_PORT"`
	User       string `yaml:"user" env:"DB_USER"`
	Password   string `yaml:"password" env:"DB_PASS"`
	DBName     string `yaml:"db" env:"DB_NAME"`
	Charset    string `yaml:"charset" env:"DB_CHARSET" envDefault:"utf8"`
	Autocommit *bool  `yaml:"autocommit" env:"DB_AUTOCOMMIT" envDefault:"true"`
	MaxSize    int    `yaml:"maxsize" env:"DB_MAXSIZE" envDefault:"10"`
	MinSize    int    `yaml:"minsize" env:"DB_MINSIZE" envDefault:"1"`
	SSLMode    string `yaml:"sslmode" env:"DB_SSL" envDefault:"disable"`
	Timeout    int    `yaml:"timeout" env:"DB_TIMEOUT" envDefault:"5"` // in seconds
}

func (c *DatabaseConfig) AutocommitEnabled() bool {
	return c.Autocommit == nil || *c.Autocommit
}

func (c *Config) Validate() error {
	switch c.Logger.Target {
	case "stdout", "stderr":
	case "file":
		if c.Logger.Filename == "" {
			return errors.New("logger.filename is required for target 'file'")
		}
	default:
		return fmt.Errorf("unknown logger.target: %s", c.Logger.Target)
	}

	if c.HTTP.Addr == "" {
		return errors.New("http.addr cannot be empty")
	}

	if c.Database.MaxSize < 1 {
		return errors.New("database.maxsize must be positive")
	}
	if c.Database.MinSize < 0 || c.Database.MinSize > c.Database.MaxSize {
		return errors.New("database.minsize must be between 0 and maxsize")
	}
	return nil
}

// GetConfig читает YAML, затем .env и переменные окружения; значения по умолчанию только для пустых полей
func GetConfig(filename string) (*Config, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = "./" + filename
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding YAML: %w", err)
	}

	if err := LoadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error applying env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv подгружает .env если он есть. Уже заданные переменные не перетираются
func LoadDotEnv(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", filename, err)
	}
	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("error loading %s: %w", filename, err)
	}
	return nil
}

// ApplyEnv переопределяет поля с тегом env из переменных окружения.
// Значения envDefault подставляются только в незаполненные поля
func ApplyEnv(target interface{}) error {
	return env.ParseWithOptions(target, env.Options{SetDefaultsForZeroValuesOnly: true})
}

// ApplyDefaults заполняет нулевые поля значениями из тега envDefault, окружение не читается
func ApplyDefaults(target interface{}) error {
	return env.ParseWithOptions(target, env.Options{
		Environment:                  map[string]string{},
		SetDefaultsForZeroValuesOnly: true,
	})
}
