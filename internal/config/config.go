// Package config loads the application configuration shared by the CLI commands.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/rxtech-lab/coin-signal/pkg/utils"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     LogConfig     `yaml:"log" json:"log"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	API     APIConfig     `yaml:"api" json:"api"`
	Binance BinanceConfig `yaml:"binance" json:"binance"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"required,oneof=debug info warn error"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver" jsonschema:"enum=duckdb,enum=sqlite3,default=duckdb" validate:"required,oneof=duckdb sqlite3"`
	// DSN is a database file path, or :memory:
	DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=coin_signal.duckdb" validate:"required"`
}

type APIConfig struct {
	Address string `yaml:"address" json:"address" jsonschema:"default=:8080" validate:"required"`
}

type BinanceConfig struct {
	// BaseURL overrides the REST endpoint, e.g. https://api.binance.us
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty" validate:"omitempty,url"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info"},
		Storage: StorageConfig{Driver: string(storage.DriverDuckDB), DSN: "coin_signal.duckdb"},
		API:     APIConfig{Address: ":8080"},
		Binance: BinanceConfig{BaseURL: ""},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes a YAML document on top of the defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Namespace()+" failed "+fieldError.Tag())
	}

	return errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid config: %s", strings.Join(fields, "; "))
}

// StorageDriver returns the validated storage driver.
func (c Config) StorageDriver() storage.Driver {
	return storage.Driver(c.Storage.Driver)
}

// Schema returns the JSON schema of the application config.
func Schema() (string, error) {
	//nolint:exhaustruct // Empty struct is intentional for schema generation
	return utils.GetSchemaFromConfig(Config{})
}
