package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	SlackBotToken string `envconfig:"SLACK_BOT_TOKEN"`
	EventWorkers  int    `envconfig:"EVENT_WORKERS" default:"4"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
