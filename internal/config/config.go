package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CustomerAccountConfig
	CorsConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
	IsDev() bool
}

type CustomerAccountConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAPIURL() string
	GetAuthURL() string
	GetTokenURL() string
	GetLogoutURL() string
	GetScope() string
	GetAuthHeaderMode() AuthHeaderMode
	GetIssuer() string
	GetJWKSURL() string
	GetHTTPTimeout() time.Duration
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	CustomerAccount
	Cors
	Security
}

var validate = validator.New()

// New loads the optional .env files, reads the environment and validates the
// result. A returned error is a startup failure.
func New(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	return NewFromValues(LoadEnvVars(), LoadCustomerAccount(), LoadCors(), LoadSecurity())
}

// NewFromValues validates already populated configuration sections.
func NewFromValues(env EnvVars, ca CustomerAccount, cors Cors, sec Security) (Config, error) {
	c := mainConfig{EnvVars: env, CustomerAccount: ca, Cors: cors, Security: sec}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	for _, section := range []any{c.EnvVars, c.CustomerAccount, c.Security} {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("[config] invalid configuration: %w", err)
		}
	}
	if (c.Issuer == "") != (c.JWKSURL == "") {
		return fmt.Errorf("[config] %s and %s must be set together", issuerEnvVar, jwksURLEnvVar)
	}
	return nil
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("[config] load %s: %w", file, err)
		}
	}
	return nil
}
