package config

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "STORE_DRIVER", "DATABASE_PATH", "MONGO_URI",
	"MONGO_DATABASE", "MONGO_COLLECTION", "INPUT_FOLDER", "PIPELINE_WORKERS",
	"KEYWORD_COUNT", "STOPWORD_LANGUAGE", "S3_ENABLED", "S3_ENDPOINT",
	"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_BUCKET_NAME", "S3_USE_SSL",
}

// cleanEnv isolates a test from the caller's environment and any .env file.
func cleanEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 5, cfg.KeywordCount)
	assert.Equal(t, "english", cfg.StopwordLanguage)
	assert.False(t, cfg.S3Enabled)
}

func TestLoadReadsDotEnv(t *testing.T) {
	cleanEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("PIPELINE_WORKERS=2\nINPUT_FOLDER=/srv/pdfs\n"), 0o644))
	// godotenv does not override variables that are already present.
	os.Unsetenv("PIPELINE_WORKERS")
	os.Unsetenv("INPUT_FOLDER")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "/srv/pdfs", cfg.InputFolder)
}

func TestLoadFromEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("PIPELINE_WORKERS", "3")
	t.Setenv("KEYWORD_COUNT", "8")
	t.Setenv("S3_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 8, cfg.KeywordCount)
	assert.True(t, cfg.S3Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"driver":   {"STORE_DRIVER": "postgres"},
		"workers":  {"PIPELINE_WORKERS": "0"},
		"keywords": {"KEYWORD_COUNT": "-1"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("PIPELINE_WORKERS_TEST", "many")
	assert.Equal(t, 4, getEnvInt("PIPELINE_WORKERS_TEST", 4))
}
