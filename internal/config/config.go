package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure shared by both servers.
type Config struct {
	Log    logConfig     `yaml:"log"`
	Rabbit rabbitConfig  `yaml:"rabbit"`
	Users  serviceConfig `yaml:"user_service"`
	Rides  serviceConfig `yaml:"ride_service"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	_loaded = &defaultConfig

	configFile := os.Getenv("RIDESHARE_CONFIG_FILE")
	if configFile == "" {
		configFile = "rideshare.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file %s: %v, using defaults", configFile, err)
	}

	// Environment variables win over everything
	ApplyEnvOverrides()
}

// LoadDefault installs the compiled-in defaults without touching files or env.
func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file, merged over defaults.
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Log: logConfig{
		Level:  "info",
		Format: "json",
	},
	Rabbit: rabbitConfig{
		Host:           "localhost",
		Port:           5672,
		User:           "guest",
		Password:       "guest",
		Queue:          "notifications",
		PublishTimeout: 5,
	},
	Users: serviceConfig{
		Http: httpConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Postgres: postgresConfig{
			User:               "postgres",
			Password:           "postgres",
			Host:               "localhost",
			Port:               5432,
			Database:           "rideshare",
			MaxOpenConnections: 10,
		},
	},
	Rides: serviceConfig{
		Http: httpConfig{
			Host: "0.0.0.0",
			Port: 5001,
		},
		Postgres: postgresConfig{
			User:               "postgres",
			Password:           "postgres",
			Host:               "localhost",
			Port:               5432,
			Database:           "rideshare",
			MaxOpenConnections: 10,
		},
	},
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (c httpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

type rabbitConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Queue    string `yaml:"queue"`
	// PublishTimeout bounds a single publish attempt, in seconds.
	PublishTimeout int `yaml:"publish_timeout"`
}

func (c rabbitConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d/",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
	)
}

type serviceConfig struct {
	Http     httpConfig     `yaml:"http"`
	Postgres postgresConfig `yaml:"postgres"`
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Log
}

func Rabbit() rabbitConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Rabbit
}

func UserService() serviceConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Users
}

func RideService() serviceConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Rides
}

// Get returns the full configuration
func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if level := os.Getenv("RIDESHARE_LOG_LEVEL"); level != "" {
		_loaded.Log.Level = level
	}
	if format := os.Getenv("RIDESHARE_LOG_FORMAT"); format != "" {
		_loaded.Log.Format = format
	}

	if host := os.Getenv("RIDESHARE_RABBIT_HOST"); host != "" {
		_loaded.Rabbit.Host = host
	}
	if portStr := os.Getenv("RIDESHARE_RABBIT_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			_loaded.Rabbit.Port = port
		}
	}
	if user := os.Getenv("RIDESHARE_RABBIT_USER"); user != "" {
		_loaded.Rabbit.User = user
	}
	if password := os.Getenv("RIDESHARE_RABBIT_PASSWORD"); password != "" {
		_loaded.Rabbit.Password = password
	}
	if queue := os.Getenv("RIDESHARE_RABBIT_QUEUE"); queue != "" {
		_loaded.Rabbit.Queue = queue
	}
	if timeoutStr := os.Getenv("RIDESHARE_RABBIT_PUBLISH_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil {
			_loaded.Rabbit.PublishTimeout = timeout
		}
	}

	applyServiceEnvOverrides("RIDESHARE_USER", &_loaded.Users)
	applyServiceEnvOverrides("RIDESHARE_RIDE", &_loaded.Rides)
}

func applyServiceEnvOverrides(prefix string, svc *serviceConfig) {
	if host := os.Getenv(prefix + "_HTTP_HOST"); host != "" {
		svc.Http.Host = host
	}
	if portStr := os.Getenv(prefix + "_HTTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			svc.Http.Port = port
		}
	}

	if dbHost := os.Getenv(prefix + "_DB_HOST"); dbHost != "" {
		svc.Postgres.Host = dbHost
	}
	if dbPortStr := os.Getenv(prefix + "_DB_PORT"); dbPortStr != "" {
		if port, err := strconv.Atoi(dbPortStr); err == nil {
			svc.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv(prefix + "_DB_USER"); dbUser != "" {
		svc.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv(prefix + "_DB_PASSWORD"); dbPassword != "" {
		svc.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv(prefix + "_DB_NAME"); dbName != "" {
		svc.Postgres.Database = dbName
	}
}
