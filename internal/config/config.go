package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del backend.
type Config struct {
	HTTPPort            string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string `env:"DATABASE_URL,required"`
	JWTSecret           string `env:"JWT_SECRET"`
	JWTTTLMinutes       int    `env:"JWT_TTL_MINUTES" envDefault:"10080"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL       string `env:"OPENAI_BASE_URL"`
	OpenAIModel         string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	BasicPlanDailyLimit int    `env:"BASIC_PLAN_DAILY_LIMIT" envDefault:"50"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ClientConfig es la configuración del cliente de terminal.
type ClientConfig struct {
	AuthURL   string `env:"GAPGAP_AUTH_URL" envDefault:"http://localhost:8080/auth"`
	ChatURL   string `env:"GAPGAP_CHAT_URL" envDefault:"http://localhost:8080/chat"`
	StatePath string `env:"GAPGAP_STATE_PATH"`
}

// LoadClientConfig carga la configuración del cliente desde variables de entorno.
func LoadClientConfig() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
