package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/party-rsvp-backend/config"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		url  string
		name string
	}{
		{"postgres://u:p@localhost:5432/party", "postgres"},
		{"host=localhost user=u dbname=party", "postgres"},
		{"sqlite://birthday_party.db", "sqlite"},
		{"sqlite:////tmp/party.db", "sqlite"},
		{"party.db", "sqlite"},
	}
	for _, tt := range tests {
		d, err := Dialector(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.name, d.Name(), tt.url)
	}

	_, err := Dialector("")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t,
		"party.db?_txlock=immediate&_journal_mode=WAL&_busy_timeout=5000",
		sqliteDSN("party.db"))
	assert.Equal(t,
		"file:party.db?cache=shared&_txlock=immediate&_journal_mode=WAL&_busy_timeout=5000",
		sqliteDSN("file:party.db?cache=shared"))
	assert.Equal(t,
		"party.db?_txlock=deferred&_journal_mode=WAL&_busy_timeout=5000",
		sqliteDSN("party.db?_txlock=deferred"))
}

func TestConnectAbsoluteSQLitePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.db")
	db, err := Connect(&config.Config{
		DatabaseURL:    "sqlite:///" + path,
		DBMaxOpenConns: 2,
		DBMaxIdleConns: 2,
	}, zerolog.Nop())
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, db.AutoMigrate(&uniqueRow{}))

	assert.FileExists(t, path)
}

type uniqueRow struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex"`
}

func TestConnectAndUniqueViolation(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:    "sqlite:///" + filepath.Join(t.TempDir(), "party.db"),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}
	db, err := Connect(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.AutoMigrate(&uniqueRow{}))
	require.NoError(t, db.Create(&uniqueRow{Email: "a@x.com"}).Error)

	err = db.Create(&uniqueRow{Email: "a@x.com"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	err = db.Exec("INSERT INTO unique_rows (email) VALUES (?)", "a@x.com").Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
