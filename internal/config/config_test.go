package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12*time.Second, cfg.Extractor.Timeout)
	assert.Equal(t, "Mozilla/5.0 (InsightsFetcher)", cfg.Extractor.UserAgent)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "brands", cfg.Database.Table)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "insights.yaml")
	content := `
extractor:
  timeout: 5s
  phone_region: GB
server:
  port: "9000"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("INSIGHTS_SERVER_PORT", "9100")
	t.Setenv("INSIGHTS_EXTRACTOR_USE_HEADLESS_BROWSER", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Extractor.Timeout)
	assert.Equal(t, "GB", cfg.Extractor.PhoneRegion)
	assert.True(t, cfg.Extractor.UseHeadlessBrowser)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero timeout":   func(c *Config) { c.Extractor.Timeout = 0 },
		"negative delay": func(c *Config) { c.Extractor.RequestDelay = -time.Second },
		"empty agent":    func(c *Config) { c.Extractor.UserAgent = "" },
		"empty port":     func(c *Config) { c.Server.Port = "" },
		"bad level":      func(c *Config) { c.Logging.Level = "loud" },
		"bad format":     func(c *Config) { c.Logging.Format = "xml" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestExtractorSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extractor.RequestDelay = 250 * time.Millisecond

	settings := cfg.ExtractorSettings()
	assert.Equal(t, 250*time.Millisecond, settings.RequestDelay)
	assert.Equal(t, cfg.Extractor.SearchEndpoint, settings.SearchEndpoint)
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = NewLogger(LoggingConfig{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
