// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл .yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	HTTP         HTTPConfig         `yaml:"http"`
	GRPC         GRPCConfig         `yaml:"grpc"`
	Auth         AuthConfig         `yaml:"auth"`
	RemoteConfig RemoteConfigPolicy `yaml:"remote_config"`
	UserService  UserServiceConfig  `yaml:"user_service"`
	Redis        RedisConfig        `yaml:"redis"`
	Timeouts     TimeoutConfig      `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки side-HTTP-сервера (livez/healthz/metrics/jwks).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50081"`
}

// GRPCConfig описывает сетевые настройки gRPC-сервера.
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

// Addr возвращает адрес в формате host:port.
func (g HTTPConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// AuthConfig содержит параметры выпуска и валидации токенов.
// PEM-поля — локальный источник ключевого материала; при включённой
// удалённой конфигурации значения из common-service имеют приоритет.
type AuthConfig struct {
	Issuer          string        `yaml:"issuer" env:"ISSUER" env-default:"astraios"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	JWTPublicKey    string        `yaml:"jwt_public_key" env:"JWT_PUBLIC_KEY"`
	JWTPrivateKey   string        `yaml:"jwt_private_key" env:"JWT_PRIVATE_KEY"`
	JWTKeyID        string        `yaml:"jwt_key_id" env:"JWT_KEY_ID"`
}

// Bool — флаг, различающий «не задано» и явное false. У обычного bool
// записанное false неотличимо от нулевого значения, и env-default
// перекрывал бы его при overlay ENV; здесь дефолт применяется только к
// действительно незаданному полю.
type Bool struct {
	set   bool
	value bool
}

// BoolValue возвращает заданный флаг со значением v.
func BoolValue(v bool) Bool {
	return Bool{set: true, value: v}
}

// UnmarshalText реализует encoding.TextUnmarshaler; через него поле
// читают и cleanenv (ENV, env-default), и yaml-декодер файла.
func (b *Bool) UnmarshalText(text []byte) error {
	v, err := strconv.ParseBool(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}

	b.set, b.value = true, v

	return nil
}

// Or возвращает значение флага либо def, если флаг не задан.
func (b Bool) Or(def bool) bool {
	if !b.set {
		return def
	}

	return b.value
}

// RemoteConfigPolicy — политика получения ключевого материала из common-service.
type RemoteConfigPolicy struct {
	Enabled           bool          `yaml:"enabled" env:"REMOTE_CONFIG_ENABLED" env-default:"false"`
	FailFast          Bool          `yaml:"fail_fast" env:"REMOTE_CONFIG_FAIL_FAST" env-default:"true"`
	NacosDataID       string        `yaml:"nacos_data_id" env:"REMOTE_CONFIG_NACOS_DATA_ID" env-default:"auth-service-key"`
	Timeout           time.Duration `yaml:"timeout" env:"REMOTE_CONFIG_TIMEOUT" env-default:"3s"`
	CommonServiceAddr string        `yaml:"common_service_addr" env:"COMMON_SERVICE_ADDR"`
}

// FailFastEnabled возвращает действующее значение политики fail-fast;
// незаданное поле означает true (ошибка удалённого источника фатальна).
func (p RemoteConfigPolicy) FailFastEnabled() bool {
	return p.FailFast.Or(true)
}

// UserServiceConfig — адрес внешнего user-service.
type UserServiceConfig struct {
	Addr string `yaml:"addr" env:"USER_SERVICE_ADDR" env-required:"true"`
}

// RedisConfig — настройки подключения к Redis (хранилище refresh-привязок).
// Поля могут быть переопределены значениями spring.data.redis.* из
// удалённого конфигурационного документа.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	Database int    `yaml:"database" env:"REDIS_DATABASE" env-default:"0"`
}

// Addr возвращает адрес в формате host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
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
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
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

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
