package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "EVENTBOARD_"

type Application struct {
	Addr  string `koanf:"addr"`
	Title string `koanf:"title"`
	// Categories are always offered by the list view's category selector.
	Categories []string `koanf:"categories"`
	Store      Store    `koanf:"store"`
	Csrf       Csrf     `koanf:"csrf"`
}

type Store struct {
	Seed       bool   `koanf:"seed"`
	IdStrategy string `koanf:"idstrategy"`
}

type Csrf struct {
	Enabled bool `koanf:"enabled"`
	// Key is hex encoded, 32 bytes. A random key is generated when empty.
	Key            string   `koanf:"key"`
	Secure         bool     `koanf:"secure"`
	TrustedOrigins []string `koanf:"trustedorigins"`
}

func Defaults() Application {
	return Application{
		Addr:       ":8181",
		Title:      "August",
		Categories: []string{"Work", "Personal"},
		Store: Store{
			Seed:       true,
			IdStrategy: "sequence",
		},
		Csrf: Csrf{
			Enabled: true,
			Secure:  false,
		},
	}
}

// Load merges, in order: defaults, the YAML file at path (optional) and
// EVENTBOARD_* environment variables, where "_" separates key levels.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
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

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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
