package config

import (
	"errors"
	"fmt"
	"sync"

	"meetspace/shared/constant"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	Metrics  Metrics  `envconfig:"METRICS"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name     string `envconfig:"APP_NAME" default:"meetspace"`
	Timezone string `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`
	CORS     struct {
		AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
		AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
		AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
		AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
		Enable           bool     `envconfig:"ENABLE"`
		MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
	} `envconfig:"CORS"`
	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
	} `envconfig:"RATE_LIMITER"`
	// LoginLimiter throttles the unauthenticated /auth endpoints per client IP.
	LoginLimiter struct {
		Enable            bool    `envconfig:"ENABLE"`
		RequestsPerSecond float64 `envconfig:"REQUESTS_PER_SECOND"`
		Burst             int     `envconfig:"BURST"`
	} `envconfig:"LOGIN_LIMITER"`
	APIKey                  string `envconfig:"API_KEY"`
	PasswordResetTTLMinutes int    `envconfig:"PASSWORD_RESET_TTL_MINUTES" default:"30"`
}

type Cache struct {
	Redis struct {
		Primary struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	TTL int `envconfig:"TTL" default:"300"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type DB struct {
	Postgres struct {
		MaxRetry       int            `envconfig:"MAX_RETRY"        default:"3"`
		RetryWaitTime  int            `envconfig:"RETRY_WAIT_TIME"  default:"2"`
		MigrationTable string         `envconfig:"MIGRATION_TABLE"  default:"schema_migrations"`
		AutoMigrate    bool           `envconfig:"AUTO_MIGRATE"`
		Prefix         string         `envconfig:"PREFIX"`
		Read           PostgresTarget `envconfig:"READ"`
		Write          PostgresTarget `envconfig:"WRITE"`
	} `envconfig:"POSTGRES"`
}

// PostgresTarget is one side of the read/write connection pair.
type PostgresTarget struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Kafka struct {
	Enable        bool     `envconfig:"ENABLE"`
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"meetspace-worker"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topic struct {
		Meeting       string `envconfig:"MEETING"        default:"meetspace.meeting"`
		PasswordReset string `envconfig:"PASSWORD_RESET" default:"meetspace.password-reset"`
	} `envconfig:"TOPIC"`
}

type Metrics struct {
	Enable bool   `envconfig:"ENABLE"`
	Path   string `envconfig:"PATH" default:"/metrics"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	} `envconfig:"S3"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == constant.ServerEnvProduction
}

// Validate reports the settings a server process cannot run without.
// Library code never calls it so tests can work with a zero Config.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required"))
	}

	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT access and refresh secrets must differ"))
	}

	if c.DB.Postgres.Write.Host == "" || c.DB.Postgres.Write.Name == "" {
		errs = append(errs, errors.New("DB_POSTGRES_WRITE_HOST and DB_POSTGRES_WRITE_NAME are required"))
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when Kafka is enabled"))
	}

	if c.App.LoginLimiter.Enable && c.App.LoginLimiter.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("APP_LOGIN_LIMITER_REQUESTS_PER_SECOND must not be negative"))
	}

	return errors.Join(errs...)
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("No .env file loaded, reading configuration from the environment")
		}

		err = envconfig.Process("", &conf)

		initialized = err == nil
	})

	if err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
