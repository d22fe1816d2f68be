package client

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "NANOLEAF"

	// DefaultPort is the port the controller serves its HTTP API on.
	DefaultPort = 16021
)

// Config holds everything needed to reach a controller.
type Config struct {
	Address string
	Token   string

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration
}

// ConfigFromEnv reads NANOLEAF_IP and NANOLEAF_AUTH_TOKEN.
func ConfigFromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return Config{
		Address: v.GetString("ip"),
		Token:   v.GetString("auth_token"),
	}
}

// WithEnvDefaults fills any empty field from the environment. Explicit values win.
func (c Config) WithEnvDefaults() Config {
	env := ConfigFromEnv()
	if c.Address == "" {
		c.Address = env.Address
	}
	if c.Token == "" {
		c.Token = env.Token
	}
	return c
}

// Validate returns an error if the address or token is missing.
func (c Config) Validate() error {
	if c.Address == "" {
		return errors.New("controller address is required")
	}
	if c.Token == "" {
		return errors.New("auth token is required")
	}
	return nil
}

// LoadEnvFile loads variables from the given .env files (".env" when none are given)
// into the process environment without overriding variables that are already set.
func LoadEnvFile(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Wrap(err, "could not load env file")
	}
	return nil
}
