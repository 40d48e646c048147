package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultVisitorSecret is the shipped token signing key. Deployments must
// override it with RADCON_AUTH_VISITOR_SECRET.
const DefaultVisitorSecret = "radcon-visitor-secret-change-me"

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Catalog struct {
		// Source is the object key (or path, for local storage) of the schedule
		// markup or YAML file.
		Source string `mapstructure:"source"`
		Bucket string `mapstructure:"bucket"`
	} `mapstructure:"catalog"`
	Storage struct {
		Provider     string `mapstructure:"provider"` // "local" or "s3"
		LocalStorage string `mapstructure:"local_root"`
		KeyID        string `mapstructure:"key_id"`
		AppKey       string `mapstructure:"app_key"`
		Endpoint     string `mapstructure:"endpoint"`
		Region       string `mapstructure:"region"`
	} `mapstructure:"storage"`
	Database struct {
		Driver   string `mapstructure:"driver"` // "sqlite" or "postgres"
		Path     string `mapstructure:"path"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Favorites struct {
		Backend string `mapstructure:"backend"` // "database" or "storage"
		Key     string `mapstructure:"key"`
		Bucket  string `mapstructure:"bucket"`
	} `mapstructure:"favorites"`
	Schedule struct {
		SearchDebounceMS int    `mapstructure:"search_debounce_ms"`
		Friday           string `mapstructure:"friday"`
		Saturday         string `mapstructure:"saturday"`
		Sunday           string `mapstructure:"sunday"`
	} `mapstructure:"schedule"`
	Auth struct {
		VisitorSecret string `mapstructure:"visitor_secret"`
	} `mapstructure:"auth"`
}

// SearchDebounce is the configured debounce window.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Schedule.SearchDebounceMS) * time.Millisecond
}

func Load() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	cfg, err := decode(v)
	if err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Critical: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Printf("⚠️ Config: %s", w)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix("RADCON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register keys so AutomaticEnv sees them during Unmarshal
	for _, key := range []string{
		"server.port", "server.metrics_port", "server.log_level",
		"catalog.source", "catalog.bucket",
		"storage.provider", "storage.local_root", "storage.key_id", "storage.app_key",
		"storage.endpoint", "storage.region",
		"database.driver", "database.path", "database.host", "database.port",
		"database.user", "database.password", "database.name",
		"favorites.backend", "favorites.key", "favorites.bucket",
		"schedule.search_debounce_ms", "schedule.friday", "schedule.saturday", "schedule.sunday",
		"auth.visitor_secret",
	} {
		v.BindEnv(key)
	}

	// Defaults
	v.SetDefault("server.port", ":8081")
	v.SetDefault("server.metrics_port", ":9091")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("catalog.source", "index.html")
	v.SetDefault("catalog.bucket", "site")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_root", "./data")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "radcon.db")

	v.SetDefault("favorites.backend", "database")
	v.SetDefault("favorites.key", "radcon-favorites")
	v.SetDefault("favorites.bucket", "favorites")

	// RadCon 9B
	v.SetDefault("schedule.search_debounce_ms", 200)
	v.SetDefault("schedule.friday", "2026-02-13")
	v.SetDefault("schedule.saturday", "2026-02-14")
	v.SetDefault("schedule.sunday", "2026-02-15")

	v.SetDefault("auth.visitor_secret", DefaultVisitorSecret)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Provider {
	case "local":
		if c.Storage.LocalStorage == "" {
			errs = append(errs, errors.New("storage.local_root is required for local storage (RADCON_STORAGE_LOCAL_ROOT)"))
		}
	case "s3":
		if c.Storage.KeyID == "" || c.Storage.AppKey == "" {
			errs = append(errs, errors.New("S3 credentials are missing (RADCON_STORAGE_KEY_ID, RADCON_STORAGE_APP_KEY)"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage provider %q", c.Storage.Provider))
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("database.host and database.name are required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}

	switch c.Favorites.Backend {
	case "database", "storage":
	default:
		errs = append(errs, fmt.Errorf("unknown favorites backend %q", c.Favorites.Backend))
	}
	if c.Favorites.Key == "" {
		errs = append(errs, errors.New("favorites.key must not be empty"))
	}
	if c.Auth.VisitorSecret == "" {
		errs = append(errs, errors.New("auth.visitor_secret must not be empty (RADCON_AUTH_VISITOR_SECRET)"))
	}
	if c.Schedule.SearchDebounceMS < 0 {
		errs = append(errs, errors.New("schedule.search_debounce_ms must not be negative"))
	}

	return errors.Join(errs...)
}

// Warnings lists settings that work but are unsafe outside development.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Auth.VisitorSecret == DefaultVisitorSecret {
		warnings = append(warnings, "auth.visitor_secret is the published default, visitor tokens can be forged (set RADCON_AUTH_VISITOR_SECRET)")
	}
	return warnings
}
