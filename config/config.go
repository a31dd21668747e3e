package config

import (
	"github.com/rs/zerolog"

	"github.com/pkg/errors"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const MsgFailedToReadConfiguration = "failed to read configuration"

var ErrFailedToReadConfiguration = errors.New(MsgFailedToReadConfiguration)

type Configuration struct {
	PostgresDB struct {
		Host     string `envconfig:"POSTGRES_DB_HOST" default:"localhost"`
		Port     int    `envconfig:"POSTGRES_DB_PORT" default:"5432"`
		User     string `envconfig:"POSTGRES_DB_USER" default:"postgres"`
		Pass     string `envconfig:"POSTGRES_DB_PASS" default:"postgres"`
		Database string `envconfig:"POSTGRES_DB_DATABASE" default:"postgres"`
		SSLMode  string `envconfig:"POSTGRES_DB_SSL_MODE" default:"disable"`
	}
	APIPort                         uint16        `envconfig:"API_PORT" default:"8080"`
	Authorization                   bool          `envconfig:"AUTHORIZATION" default:"true"`
	EnableTLS                       bool          `envconfig:"ENABLE_TLS" default:"false"`
	TLSCertPath                     string        `envconfig:"TLS_CERT_PATH" default:"../labdesk_cert.pem"`
	TLSKeyPath                      string        `envconfig:"TLS_KEY_PATH" default:"../labdesk_key.pem"`
	Development                     bool          `envconfig:"DEVELOPMENT" default:"false"`
	PermittedOrigin                 string        `envconfig:"PERMITTED_ORIGIN_URL" default:"*"`
	LogLevel                        zerolog.Level `envconfig:"LOG_LEVEL" default:"1"`
	ApplicationName                 string        `envconfig:"APPLICATION_NAME" default:"labdesk"`
	DBSchema                        string        `envconfig:"DB_SCHEMA" default:"labdesk"`
	HospitalAPIURL                  string        `envconfig:"HOSPITAL_API_URL" required:"true" default:"http://localhost:8000/api"`
	Proxy                           string        `envconfig:"PROXY" default:""`
	StandardAPIClientTimeoutSeconds uint          `envconfig:"STANDARD_API_CLIENT_TIMEOUT_SECONDS" default:"10"`
	RequestTimeoutSeconds           uint          `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"15"`
	RedisUrl                        string        `envconfig:"REDIS_URL" default:""`
	RedisPort                       int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword                   string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB                         int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTLMinutes               int           `envconfig:"SESSION_TTL_MINUTES" default:"60"`
	DraftTTLMinutes                 int           `envconfig:"DRAFT_TTL_MINUTES" default:"720"`
}

func ReadConfiguration() (Configuration, error) {
	var config Configuration
	err := envconfig.Process("", &config)
	if err != nil {
		err = errors.Wrap(err, MsgFailedToReadConfiguration)
		log.Error().Err(err).Msgf("%s\n", ErrFailedToReadConfiguration)
		return config, err
	}
	return config, nil
}
