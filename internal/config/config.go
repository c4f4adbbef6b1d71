// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек клиента и стаб-сервера.
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"dev"`
	TokenPath  string `yaml:"token_path" env:"TOKEN_PATH" env-default:".storefront-admin/token"`
	API        `yaml:"api"`
	Products   `yaml:"products"`
	RedisCache `yaml:"redis_cache"`
	StubServer `yaml:"stub_server"`
}

// API структура для настройки подключения к удалённому сервису витрины.
// Базовый URL выбирается по окружению: prod использует production_url,
// остальные окружения — development_url.
type API struct {
	ProductionURL  string        `yaml:"production_url"`
	DevelopmentURL string        `yaml:"development_url" env-default:"http://localhost:3000/api"`
	Timeout        time.Duration `yaml:"timeout" env-default:"10s"`
}

// Products структура для настройки операций с каталогом.
type Products struct {
	PageSize    int           `yaml:"page_size" env-default:"20"`
	UploadLimit int           `yaml:"upload_limit" env-default:"3"`
	CacheTTL    time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

// RedisCache структура для настройки подключения к redis-кешу запросов.
type RedisCache struct {
	Enabled     bool          `yaml:"enabled" env-default:"false"`
	Addr        string        `yaml:"addr" env-default:"localhost:6379"`
	Password    string        `yaml:"password"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// StubServer структура для настройки локального стаба удалённого API.
type StubServer struct {
	Address     string        `yaml:"address" env-default:":3000"`
	JWTSecret   string        `yaml:"jwt_secret" env-default:"dev-secret"`
	TokenTTL    time.Duration `yaml:"token_ttl" env-default:"2h"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// Отсутствие файла — фатальная ошибка.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// BaseURL возвращает базовый URL удалённого API для текущего окружения.
func (c *Config) BaseURL() string {
	if c.Env == "prod" {
		return c.ProductionURL
	}
	return c.DevelopmentURL
}
