package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Desteklenen depolama sürücüleri.
const (
	DBDriverPostgres = "postgres"
	DBDriverMongo    = "mongo"
	DBDriverMemory   = "memory"
)

const DefaultPurgeSchedule = "@every 1h"

// DatabaseConfig postgres bağlantı ayarları.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	TimeZone string `yaml:"timezone"`
}

// DSN gorm postgres sürücüsü için bağlantı dizesini üretir.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type AMQPConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AppConfig uygulamanın tüm çalışma zamanı ayarları.
type AppConfig struct {
	Env           string         `yaml:"env"`
	Port          string         `yaml:"port"`
	LogLevel      string         `yaml:"log_level"`
	DBDriver      string         `yaml:"db_driver"`
	CORSOrigin    string         `yaml:"cors_origin"`
	PurgeSchedule string         `yaml:"purge_schedule"`
	Database      DatabaseConfig `yaml:"database"`
	Mongo         MongoConfig    `yaml:"mongo"`
	AMQP          AMQPConfig     `yaml:"amqp"`
	Redis         RedisConfig    `yaml:"redis"`
}

var appConfig *AppConfig

// LoadConfig .env dosyasını, varsa CONFIG_FILE ile verilen YAML dosyasını ve
// ortam değişkenlerini (en yüksek öncelik) sırayla okur.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config dosyası okunamadı (%s): %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config dosyası çözümlenemedi (%s): %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	appConfig = cfg
	return cfg, nil
}

// GetConfig son yüklenen ayarları döndürür; LoadConfig çağrılmadıysa varsayılanları.
func GetConfig() *AppConfig {
	if appConfig == nil {
		cfg := &AppConfig{}
		_ = cfg.Normalize()
		return cfg
	}
	return appConfig
}

func (c *AppConfig) applyEnv() error {
	setFromEnv(&c.Env, "APP_ENV")
	setFromEnv(&c.Port, "APP_PORT")
	setFromEnv(&c.LogLevel, "LOG_LEVEL")
	setFromEnv(&c.DBDriver, "DB_DRIVER")
	setFromEnv(&c.CORSOrigin, "CORS_ORIGIN")
	setFromEnv(&c.PurgeSchedule, "PURGE_SCHEDULE")

	setFromEnv(&c.Database.Host, "DB_HOST")
	setFromEnv(&c.Database.Port, "DB_PORT")
	setFromEnv(&c.Database.User, "DB_USER")
	setFromEnv(&c.Database.Password, "DB_PASSWORD")
	setFromEnv(&c.Database.Name, "DB_NAME")
	setFromEnv(&c.Database.SSLMode, "DB_SSLMODE")
	setFromEnv(&c.Database.TimeZone, "DB_TIMEZONE")

	setFromEnv(&c.Mongo.URI, "MONGODB_URI")
	setFromEnv(&c.Mongo.Database, "MONGODB_DATABASE")

	setFromEnv(&c.AMQP.URL, "AMQP_URL")
	setFromEnv(&c.AMQP.Exchange, "AMQP_EXCHANGE")

	setFromEnv(&c.Redis.Addr, "REDIS_ADDR")
	setFromEnv(&c.Redis.Password, "REDIS_PASSWORD")
	if value, ok := os.LookupEnv("REDIS_DB"); ok && value != "" {
		db, err := strconv.Atoi(value)
		if err != nil || db < 0 {
			return fmt.Errorf("geçersiz REDIS_DB: %q", value)
		}
		c.Redis.DB = db
	}
	return nil
}

// Normalize eksik alanları varsayılanlarla doldurur ve sürücü adını doğrular.
func (c *AppConfig) Normalize() error {
	if c.Env == "" {
		c.Env = "production"
	}
	if c.Port == "" {
		c.Port = "5000"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CORSOrigin == "" {
		c.CORSOrigin = "*"
	}
	if c.PurgeSchedule == "" {
		c.PurgeSchedule = DefaultPurgeSchedule
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "":
		c.DBDriver = DBDriverPostgres
	case DBDriverPostgres, DBDriverMongo, DBDriverMemory:
	default:
		return errors.New("desteklenmeyen DB_DRIVER: " + c.DBDriver)
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.TimeZone == "" {
		c.Database.TimeZone = "UTC"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "takvim"
	}
	if c.AMQP.Exchange == "" {
		c.AMQP.Exchange = "calendar"
	}
	return nil
}

// IsDevelopment geliştirme ortamında çalışılıp çalışılmadığını bildirir.
func (c *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func setFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}
