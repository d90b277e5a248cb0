package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env-default:"info"`
	Storage  string  `yaml:"storage" env-default:"memory"`
	Redis    Redis   `yaml:"redis"`
	Bot      Bot     `yaml:"bot"`
	Console  Console `yaml:"console"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Bot struct {
	ID    string `yaml:"id" env-default:"exo-bot"`
	Depth int    `yaml:"depth" env-default:"4"`
}

type Console struct {
	Channel string `yaml:"channel" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
