package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bbcd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Collector: structures.CollectorConfig{
			SourceURL:      "https://example.com/api/bacbo/latest",
			PollInterval:   3 * time.Second,
			ErrorBackoff:   5 * time.Second,
			RequestTimeout: 8 * time.Second,
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: structures.StorageConfig{
			DataDir: "/tmp/bbcd/data",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingSourceURL(t *testing.T) {
	c := validConfig()
	c.Collector.SourceURL = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MalformedSourceURL(t *testing.T) {
	c := validConfig()
	c.Collector.SourceURL = "not a url"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingDataDir(t *testing.T) {
	c := validConfig()
	c.Storage.DataDir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BoundaryOutOfRange(t *testing.T) {
	c := validConfig()
	c.Mirror.BoundaryHour = 24
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
