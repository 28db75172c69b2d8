// Package config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Ops      OpsConfig     `yaml:"ops"`
	Auth     AuthConfig    `yaml:"auth"`
	OAuth    OAuthConfig   `yaml:"oauth"`
	DB       DBConfig      `yaml:"db"`
	Mongo    MongoConfig   `yaml:"mongo"`
	Redis    RedisConfig   `yaml:"redis"`
	S3       S3Config      `yaml:"s3"`
	CORS     CORSConfig    `yaml:"cors"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки основного HTTP-сервера (API).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// OpsConfig — сетевые настройки служебного сервера (/livez, /healthz, /metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"9090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// AuthConfig содержит параметры выпуска и валидации токенов.
type AuthConfig struct {
	// JWTSecret — общий симметричный ключ подписи (HS512).
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	// AccessTokenTTL — срок жизни access-токена (минуты/часы).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"30m"`
	// RefreshTokenTTL — срок жизни refresh-токена (дни).
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	Issuer          string        `yaml:"issuer" env:"ISSUER" env-default:"poke-board"`
	// AdminGrade — порог, начиная с которого аккаунт получает ROLE_ADMIN.
	AdminGrade int64 `yaml:"admin_grade" env:"ADMIN_GRADE" env-default:"9"`
}

// OAuthProviderConfig — реквизиты одного OAuth2-провайдера.
type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id" env-default:""`
	ClientSecret string `yaml:"client_secret" env-default:""`
	RedirectURL  string `yaml:"redirect_url" env-default:""`
}

// OAuthConfig — параметры федеративного входа.
type OAuthConfig struct {
	Kakao OAuthProviderConfig `yaml:"kakao" env-prefix:"OAUTH_KAKAO_"`
	Naver OAuthProviderConfig `yaml:"naver" env-prefix:"OAUTH_NAVER_"`
	// FrontendCallbackURL — адрес SPA, куда уходит redirect после успешного входа.
	FrontendCallbackURL string `yaml:"frontend_callback_url" env:"OAUTH_FRONTEND_CALLBACK_URL" env-default:"https://localhost:5173/oauth/callback"`
}

// DBConfig — настройки подключения к PostgreSQL.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// MongoConfig — настройки подключения к MongoDB (деревья комментариев).
type MongoConfig struct {
	URI        string `yaml:"uri" env:"MONGO_URI" env-default:""`
	Database   string `yaml:"database" env:"MONGO_DB" env-default:"pokeboard"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"comments"`
}

// RedisConfig — настройки кэша refresh-токенов (опционально, пустой URL = без кэша).
type RedisConfig struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL" env-default:""`
}

// S3Config — настройки MinIO/S3 для загрузок (аватары, изображения постов).
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT" env-default:""`
	RootUser      string        `yaml:"root_user" env:"S3_ROOT_USER" env-default:""`
	RootPassword  string        `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-default:""`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET" env-default:"pokeboard"`
	PresignTTL    time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"10m"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL" env-default:""`
	// MaxSizeBytes — ограничение размера одной загрузки.
	MaxSizeBytes int64 `yaml:"max_size_bytes" env:"S3_MAX_SIZE_BYTES" env-default:"5242880"`
}

// CORSConfig — доверенный origin фронтенда.
// Ответы 401/403 обязаны эхо-нести эти заголовки, иначе браузер скроет тело.
type CORSConfig struct {
	AllowedOrigin    string `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN" env-default:"https://localhost:5173"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
}

// LimitsConfig — ограничения выдачи и деревьев комментариев.
type LimitsConfig struct {
	DefaultPageSize int32 `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"20"`
	MaxPageSize     int32 `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"100"`
	MaxCommentDepth int32 `yaml:"max_comment_depth" env:"MAX_COMMENT_DEPTH" env-default:"5"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла ENV-переменные накладываются поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	if path != "" {
		return tryRead(path)
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
