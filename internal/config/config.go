package config

import (
	"errors"
	"log"
	"strconv"
	"time"

	pkgconfig "github.com/Skotchmaster/music_catalog/pkg/config"
	pkgdb "github.com/Skotchmaster/music_catalog/pkg/db"
	"github.com/Skotchmaster/music_catalog/pkg/hash"
)

type Config struct {
	ServiceName    string
	Port           int
	Secret         []byte
	DBDriver       string
	DatabaseURL    string
	TokenTTL       time.Duration
	PasswordScheme string
	LogLevel       string
	KafkaBrokers   []string
	ESURL          string
	ESUser         string
	ESPassword     string
	ESIndex        string
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) SearchEnabled() bool {
	return c.ESURL != ""
}

// FromEnv reads the service configuration from the environment.
func FromEnv() (Config, error) {
	cfg := Config{
		ServiceName:    pkgconfig.EnvDefault("SERVICE_NAME", "music_catalog"),
		Port:           pkgconfig.EnvIntDefault("PORT", 5000),
		Secret:         []byte(pkgconfig.EnvDefault("SECRET_KEY", "")),
		DBDriver:       pkgconfig.EnvDefault("DB_DRIVER", pkgdb.DriverPostgres),
		DatabaseURL:    pkgconfig.EnvDefault("DATABASE_URL", ""),
		TokenTTL:       pkgconfig.EnvDurationDefault("TOKEN_TTL", 24*time.Hour),
		PasswordScheme: pkgconfig.EnvDefault("PASSWORD_SCHEME", hash.SchemeAES),
		LogLevel:       pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		KafkaBrokers:   pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		ESURL:          pkgconfig.EnvDefault("ES_URL", ""),
		ESUser:         pkgconfig.EnvDefault("ES_USER", ""),
		ESPassword:     pkgconfig.EnvDefault("ES_PASSWORD", ""),
		ESIndex:        pkgconfig.EnvDefault("ES_INDEX", "catalog"),
	}

	err := errors.Join(
		pkgconfig.NonEmpty(string(cfg.Secret), "SECRET_KEY"),
		pkgconfig.NonEmpty(cfg.DatabaseURL, "DATABASE_URL"),
		pkgconfig.OneOf(cfg.DBDriver, "DB_DRIVER", pkgdb.DriverPostgres, pkgdb.DriverSQLite),
		pkgconfig.OneOf(cfg.PasswordScheme, "PASSWORD_SCHEME", hash.SchemeAES, hash.SchemeBcrypt),
	)
	return cfg, err
}

func Load() Config {
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
