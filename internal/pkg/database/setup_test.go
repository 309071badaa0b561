package database

import (
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "coach")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "gym")

	cfg := Config()
	assert.Equal(t, "db:3307", cfg.Addr)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, time.UTC, cfg.Loc)

	parsed, err := mysqldriver.ParseDSN(DSN())
	require.NoError(t, err)
	assert.Equal(t, "coach", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "gym", parsed.DBName)
	assert.Contains(t, DSN(), "charset=utf8mb4")
}

func TestConfigDefaults(t *testing.T) {
	for _, k := range []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"} {
		t.Setenv(k, "")
	}

	cfg := Config()
	assert.Equal(t, "gritgym", cfg.User)
	assert.Equal(t, "127.0.0.1:3306", cfg.Addr)
	assert.Equal(t, "gritgym_db", cfg.DBName)
}
