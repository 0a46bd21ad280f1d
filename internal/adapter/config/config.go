package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Provider *Provider
	Auth     *Auth
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Provider struct {
	HostString string        `env:"PROVIDER_ADDRESS"`
	Timeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
}

type Auth struct {
	AccessKey string `env:"OPERATOR_ACCESS_KEY"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var provider Provider
	var auth Auth
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&provider.HostString, "r", "", "Authorization provider address")
	flag.DurationVar(&provider.Timeout, "t", 10*time.Second, "Authorization provider timeout")
	flag.StringVar(&auth.AccessKey, "k", "", "Warehouse operator access key")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&provider)
	if err != nil {
		return nil, fmt.Errorf("error parsing provider config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Provider: &provider,
		Auth:     &auth,
		App:      &app,
	}

	return &config, nil
}
