package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	baseURLVar     = "BASE_URL"
	logLevelEnvVar = "LOG_LEVEL"

	devEnv = "DEV"
)

type EnvVars struct {
	Port     string `validate:"required"`
	AppName  string
	Env      string `validate:"required"`
	BaseURL  string `validate:"omitempty,url"`
	LogLevel string `validate:"omitempty,oneof=trace debug info warn error"`
}

var _ EnvConfig = EnvVars{}

func LoadEnvVars() EnvVars {
	return EnvVars{
		Port:     GetEnv(portEnvVar, "8080"),
		AppName:  GetEnv(appNameVar, "Storefront Auth"),
		Env:      strings.ToUpper(GetEnv(envVar, devEnv)),
		BaseURL:  strings.TrimSuffix(GetEnv(baseURLVar, ""), "/"),
		LogLevel: strings.ToLower(GetEnv(logLevelEnvVar, "info")),
	}
}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return devEnv
	}
	return e.Env
}

// GetBaseURL returns the public origin of the storefront (e.g. "https://shop.example.com").
// Empty means the origin is derived from each request.
func (e EnvVars) GetBaseURL() string {
	return e.BaseURL
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) IsDev() bool {
	return e.GetEnv() == devEnv
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(envVar string, defaultValue int) int {
	v, err := strconv.Atoi(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(envVar string, defaultValue bool) bool {
	v, err := strconv.ParseBool(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
