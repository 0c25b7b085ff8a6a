package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"127.0.0.1"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"3306"`
	Username string `yaml:"user" env:"DB_USER" env-default:"timeitin"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"timeitin"`
}

type Server struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR" env-default:":8080"`
}

type Auth struct {
	// HS256 signing key. Must come from the environment in release mode.
	JWTSecret   string `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTLHrs int    `yaml:"token_ttl_hours" env:"TOKEN_TTL_HOURS" env-default:"24"`
	StayTTLHrs  int    `yaml:"stay_ttl_hours" env:"STAY_TTL_HOURS" env-default:"168"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Config struct {
	Mode   string   `yaml:"mode" env:"APP_MODE" env-default:"dev"`
	Server Server   `yaml:"server"`
	DB     Database `yaml:"database"`
	Auth   Auth     `yaml:"auth"`
	Log    Log      `yaml:"log"`
}

// Load reads the yaml file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Mode != "dev" && cfg.Mode != "release" {
		return nil, fmt.Errorf("mode must be dev or release, got %q", cfg.Mode)
	}
	if cfg.Auth.JWTSecret == "" {
		if cfg.Mode == "release" {
			return nil, fmt.Errorf("jwt_secret is required in release mode")
		}
		cfg.Auth.JWTSecret = "dev-only-secret"
	}
	return &cfg, nil
}
