package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value int    `json:"value" yaml:"value" toml:"value"`
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetupConfig(t *testing.T) {
	validConfig := TestConfig{Name: "test", Value: 123}

	tests := map[string]struct {
		file    string
		content string
	}{
		"json": {"config.json", `{"name": "test", "value": 123}`},
		"yaml": {"config.yaml", "name: test\nvalue: 123\n"},
		"yml":  {"config.yml", "name: test\nvalue: 123\n"},
		"toml": {"config.toml", "name = \"test\"\nvalue = 123\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var config TestConfig
			err := setupConfig(writeTemp(t, tt.file, tt.content), &config)

			assert.NoError(t, err)
			assert.Equal(t, validConfig, config)
		})
	}
}

func TestSetupConfig_ThrowError(t *testing.T) {
	assert := assert.New(t)

	err := setupConfig("nonexistent.json", &TestConfig{})
	assert.Error(err)

	err = setupConfig(writeTemp(t, "config.ini", "name=test"), &TestConfig{})
	assert.Error(err)

	err = setupConfig(writeTemp(t, "config.json", "{"), &TestConfig{})
	assert.Error(err)
}

func TestInitConfig(t *testing.T) {
	assert := assert.New(t)

	var config TestConfig
	err := InitConfig(writeTemp(t, "cpu.json", `{"name": "cpu", "value": 4}`), &config)
	assert.NoError(err)
	assert.Equal(TestConfig{Name: "cpu", Value: 4}, config)

	err = InitConfig("nonexistent.yaml", &config)
	assert.ErrorContains(err, "nonexistent.yaml")
}
