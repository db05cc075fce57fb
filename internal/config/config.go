package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret               string `env:"JWT_SECRET,required"`
	AccessTokenLifetimeSec  int    `env:"ACCESS_TOKEN_LIFETIME" envDefault:"900"`
	RefreshTokenLifetimeSec int    `env:"REFRESH_TOKEN_LIFETIME" envDefault:"86400"`

	ChannelListURL string `env:"CHANNEL_LIST_URL,required"`
	PodcastURL     string `env:"PODCAST_URL,required"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
