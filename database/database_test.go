package database

import (
	"os"
	"testing"

	"postsvc/config"

	"github.com/stretchr/testify/require"
)

// TestConnect requires a live database; skip unless DB_HOST is provided.
func TestConnect_SkipUnlessDBHost(t *testing.T) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("skipping TestConnect: no DB_HOST provided")
	}

	cfg := &config.Config{
		DBHost:     host,
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}
