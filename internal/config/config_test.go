package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "ALLOWED_ORIGINS", "MIN_TEXT_LENGTH", "INDEX_POLL_INTERVAL", "GEMINI_API_KEY", "QDRANT_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "rolereader_db", cfg.Database.DBName)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 50, cfg.Text.MinLength)
	assert.Equal(t, time.Minute, cfg.Worker.IndexPollInterval)
	assert.False(t, cfg.SemanticSearchEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MIN_TEXT_LENGTH", "80")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("INDEX_POLL_INTERVAL", "30s")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("QDRANT_URL", "http://localhost:6334")

	cfg := Load()

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 80, cfg.Text.MinLength)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 30*time.Second, cfg.Worker.IndexPollInterval)
	assert.True(t, cfg.SemanticSearchEnabled())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n"}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
