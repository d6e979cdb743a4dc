package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config — конфигурация всех бинарников.
type Config struct {
	App        AppConfig        `yaml:"app"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Exports    ExportConfig     `yaml:"exports"`
}

// AppConfig — имя и окружение приложения.
type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

// HTTPConfig — параметры HTTP-сервера API.
type HTTPConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// UserHeader — заголовок, в котором прокси аутентификации передает UUID пользователя.
	UserHeader string `yaml:"user_header"`
}

// DatabaseConfig — подключение к Postgres и миграции.
type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	DBName         string `yaml:"dbname"`
	SSLMode        string `yaml:"sslmode"`
	MaxConnections int    `yaml:"max_connections"`
	MigrationsDir  string `yaml:"migrations_dir"`
	AutoMigrate    bool   `yaml:"auto_migrate"`
}

// TelegramConfig — параметры бота уборщиков.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
	// PollTimeout — таймаут long polling в секундах.
	PollTimeout int `yaml:"poll_timeout"`
}

// LoggingConfig — уровень и формат логов.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// MonitoringConfig включает /metrics.
type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

// ExportConfig — каталог выгрузок xlsx.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// Load читает .env (если есть), затем YAML-файл с подстановкой ${VAR}.
// Отсутствующий файл конфигурации не является ошибкой: значения берутся из окружения и умолчаний.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("не удалось загрузить .env: %w", err)
	}

	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			expanded := []byte(os.ExpandEnv(string(data)))
			if err := yaml.Unmarshal(expanded, &cfg); err != nil {
				return nil, fmt.Errorf("ошибка при разборе %s: %w", configPath, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("ошибка при чтении %s: %w", configPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv заполняет незаданные значения из переменных окружения DB_*, API_PORT и BOT_TOKEN.
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASS")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.HTTP.Port, "API_PORT")
	setString(&c.Telegram.BotToken, "BOT_TOKEN")
	if v := os.Getenv("DB_PORT"); v != "" && c.Database.Port == 0 {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("некорректный DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	return nil
}

func setString(dst *string, env string) {
	if *dst != "" {
		return
	}
	*dst = os.Getenv(env)
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "pilgrimage"
	}
	if c.HTTP.Port == "" {
		c.HTTP.Port = "8080"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.HTTP.UserHeader == "" {
		c.HTTP.UserHeader = "X-User-ID"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConnections == 0 {
		c.Database.MaxConnections = 10
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}
	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}

// Verify проверяет значения, без которых не стартует ни один бинарник.
func (c *Config) Verify() error {
	var errs []error
	if c.Database.User == "" {
		errs = append(errs, errors.New("database user is not set (database.user or DB_USER)"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database name is not set (database.dbname or DB_NAME)"))
	}
	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid http port %q", c.HTTP.Port))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// VerifyBot дополнительно требует токен Telegram.
func (c *Config) VerifyBot() error {
	if err := c.Verify(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return errors.New("telegram bot token is not set (telegram.bot_token or BOT_TOKEN)")
	}
	return nil
}

// DSN собирает строку подключения lib/pq.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
