package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type AuditoriaConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	AMQPURL    string `yaml:"amqp_url"`
}

type AditivosConfig struct {
	// Quando true, impactos em dias pulam fins de semana; o padrão desloca
	// dias corridos.
	DiasUteis bool `yaml:"dias_uteis"`
}

type Config struct {
	DB        DBConfig        `yaml:"db"`
	Server    ServerConfig    `yaml:"server"`
	JWT       JWTConfig       `yaml:"jwt"`
	Auditoria AuditoriaConfig `yaml:"auditoria"`
	Aditivos  AditivosConfig  `yaml:"aditivos"`
}

// Load lê config.yaml (se existir) e aplica overrides de variáveis de ambiente.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DB:     DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "postgres", Name: "delivery", SSLMode: "disable"},
		Server: ServerConfig{Port: "8080"},
	}

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	overrideFromEnv(cfg)
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.DB.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DB.Name = v
	}
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		cfg.DB.SSLMode = "disable"
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("AUDIT_WEBHOOK_URL"); v != "" {
		cfg.Auditoria.WebhookURL = v
	}
	if v := os.Getenv("AUDIT_AMQP_URL"); v != "" {
		cfg.Auditoria.AMQPURL = v
	}
	if os.Getenv("ADITIVOS_DIAS_UTEIS") == "true" {
		cfg.Aditivos.DiasUteis = true
	}
}
