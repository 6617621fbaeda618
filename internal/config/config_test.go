package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefault() {
	cfg := Default()

	suite.Equal("info", cfg.Log.Level)
	suite.Equal(storage.DriverDuckDB, cfg.StorageDriver())
	suite.Equal("coin_signal.duckdb", cfg.Storage.DSN)
	suite.Equal(":8080", cfg.API.Address)
	suite.Empty(cfg.Binance.BaseURL)
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestLoadWithoutPathReturnsDefaults() {
	cfg, err := Load("")
	suite.NoError(err)
	suite.Equal(Default(), cfg)
}

func (suite *ConfigTestSuite) TestLoadOverridesDefaults() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	content := `
log:
  level: debug
storage:
  driver: sqlite3
  dsn: runs.sqlite
binance:
  base_url: https://api.binance.us
`
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("debug", cfg.Log.Level)
	suite.Equal(storage.DriverSQLite, cfg.StorageDriver())
	suite.Equal("runs.sqlite", cfg.Storage.DSN)
	suite.Equal(":8080", cfg.API.Address)
	suite.Equal("https://api.binance.us", cfg.Binance.BaseURL)
}

func (suite *ConfigTestSuite) TestParseEmptyDocument() {
	cfg, err := Parse([]byte(""))
	suite.NoError(err)
	suite.Equal(Default(), cfg)
}

func (suite *ConfigTestSuite) TestParseErrors() {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown driver", content: "storage:\n  driver: postgres\n", errMsg: "Config.Storage.Driver failed oneof"},
		{name: "unknown log level", content: "log:\n  level: trace\n", errMsg: "Config.Log.Level failed oneof"},
		{name: "empty dsn", content: "storage:\n  dsn: \"\"\n", errMsg: "Config.Storage.DSN failed required"},
		{name: "bad base url", content: "binance:\n  base_url: not a url\n", errMsg: "Config.Binance.BaseURL failed url"},
		{name: "unknown key", content: "metrics:\n  enabled: true\n", errMsg: "failed to parse config"},
		{name: "malformed yaml", content: "log: [", errMsg: "failed to parse config"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := Parse([]byte(tc.content))
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
			suite.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (suite *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestSchema() {
	schema, err := Schema()
	suite.Require().NoError(err)
	suite.Contains(schema, `"storage"`)
	suite.Contains(schema, `"sqlite3"`)
	suite.Contains(schema, `"base_url"`)
}
