package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config configuración completa de la aplicación.
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	DB    DBConfig
	JWT   JWTConfig
	Redis RedisConfig
}

// AppConfig datos generales de la aplicación.
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"` // development | production
	LogLevel string `mapstructure:"log_level"`
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr dirección de escucha host:puerto.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// DSN cadena de conexión pgx.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// JWTConfig configuración de autenticación.
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	ExpMinutes int    `mapstructure:"exp_minutes"`
}

// RedisConfig configuración del caché de alertas. Si Addr está vacío se usa caché noop.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load lee la configuración desde config.yaml y variables de entorno.
// Las variables de entorno usan prefijo TIENDA, ej: TIENDA_DB_HOST.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("TIENDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// El archivo es opcional: con defaults + env alcanza
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error leyendo configuración: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parseando configuración: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("configuración inválida: jwt.secret es obligatorio")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tienda-pos")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "tienda_pos")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_conns", 10)

	v.SetDefault("jwt.issuer", "tienda-pos")
	v.SetDefault("jwt.exp_minutes", 60)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
}
