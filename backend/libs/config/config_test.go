package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	API struct {
		BaseURL string        `yaml:"baseUrl" env:"SAMPLE_API_BASE"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Port    int      `yaml:"port"`
	Debug   bool     `yaml:"debug"`
	Tags    []string `yaml:"tags"`
	Ignored string   `yaml:"ignored" env:"-"`
}

func TestLoadConfigFromFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  baseUrl: https://file\n  timeout: 2s\nport: 80\n"), 0o600))

	t.Setenv("SAMPLE_API_BASE", "https://env")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("DEBUG", "true")
	t.Setenv("TAGS", "a, b,,c")
	t.Setenv("IGNORED", "nope")

	var cfg sample
	require.NoError(t, LoadConfigFrom(path, &cfg))

	assert.Equal(t, "https://env", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 80, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Empty(t, cfg.Ignored)
}

func TestLoadConfigFromRejectsBadInput(t *testing.T) {
	assert.Error(t, LoadConfigFrom("", nil))

	var notStruct int
	assert.Error(t, LoadConfigFrom("", &notStruct))

	t.Setenv("PORT", "eighty")
	var cfg sample
	assert.ErrorContains(t, LoadConfigFrom("", &cfg), "PORT")

	assert.Error(t, LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"), &sample{}))
}
