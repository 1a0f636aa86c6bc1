package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type AuthMode string

const (
	// AuthModeHeader trusts the X-User-Id header set by an authenticating proxy.
	AuthModeHeader AuthMode = "header"
	// AuthModeGoogle validates Google ID tokens sent as bearer tokens.
	AuthModeGoogle AuthMode = "google"
)

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Auth     Auth     `koanf:"auth"`
	AI       AI       `koanf:"ai"`
	Jobs     Jobs     `koanf:"jobs"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
}

type Auth struct {
	Mode     AuthMode `koanf:"mode"`
	Audience string   `koanf:"audience"`
}

type AI struct {
	ApiKey  string `koanf:"apikey"`
	BaseUrl string `koanf:"baseurl"`
	Model   string `koanf:"model"`
}

type Jobs struct {
	CronSecret string `koanf:"cronsecret"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

func defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Port: 8181,
		Auth: Auth{
			Mode: AuthModeHeader,
		},
		AI: AI{
			BaseUrl: "https://openrouter.ai/api/v1",
			Model:   "openai/gpt-4o-mini",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "moneta",
			Pass:   "",
			Name:   "moneta",
			Schema: "moneta",
		},
	}
}

func Load(path string) (Application, error) {
	// .env is optional, variables already present in the environment win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not load .env file: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "MONETA_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "MONETA_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate reports configuration that would leave the server half-initialized.
func (a Application) Validate() error {
	if a.Database.Name == "" {
		return fmt.Errorf("%w: database name is required", ErrInvalidConfig)
	}
	if a.Jobs.CronSecret == "" {
		return fmt.Errorf("%w: jobs.cronsecret is required", ErrInvalidConfig)
	}
	switch a.Auth.Mode {
	case AuthModeHeader:
	case AuthModeGoogle:
		if a.Auth.Audience == "" {
			return fmt.Errorf("%w: auth.audience is required in google mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown auth mode %q", ErrInvalidConfig, a.Auth.Mode)
	}
	return nil
}

func (a Application) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}
