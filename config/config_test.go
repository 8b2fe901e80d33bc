package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_PORT", "DB_TABLE", "STORE", "LOG_LEVEL", "LOG_FORMAT", "PORT", "DB_DATABASE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, "school_db", cfg.DBTable)
	assert.Equal(t, "mysql", cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":3000", cfg.ListenAddr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_DATABASE", "schools")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 3307, cfg.DBPort)
	assert.Equal(t, "schools", cfg.DBName)
	assert.Equal(t, ":8081", cfg.ListenAddr())
	assert.Equal(t, "app:secret@tcp(db.internal:3307)/schools", cfg.DSN())
}

func TestValidate(t *testing.T) {
	base := Config{DBPort: 3306, DBName: "schools", DBTable: "school_db", Port: 3000, Store: "mysql", LogFormat: "json"}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"db port out of range", func(c *Config) { c.DBPort = 70000 }},
		{"missing database", func(c *Config) { c.DBName = "" }},
		{"table with spaces", func(c *Config) { c.DBTable = "school db" }},
		{"table with quote", func(c *Config) { c.DBTable = "x`; DROP TABLE y" }},
		{"unknown store", func(c *Config) { c.Store = "redis" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
