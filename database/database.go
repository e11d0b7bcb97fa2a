package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharath018/party-rsvp-backend/config"
)

// Connect opens the connection pool selected by cfg.DatabaseURL. Failure here
// is fatal for the caller: the service cannot run without its store.
func Connect(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger, 200*time.Millisecond),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DatabaseDriver(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Dialector maps a DATABASE_URL onto a gorm dialector. postgres:// URLs and
// key=value DSNs go to PostgreSQL; everything else goes to SQLite.
//
// SQLite URLs follow the SQLAlchemy form: sqlite:///party.db is relative to
// the working directory and sqlite:////var/lib/party.db is absolute.
func Dialector(url string) (gorm.Dialector, error) {
	lower := strings.ToLower(url)
	switch {
	case url == "":
		return nil, fmt.Errorf("DATABASE_URL is empty")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"), strings.Contains(lower, "host="):
		return postgres.Open(url), nil
	case strings.HasPrefix(lower, "sqlite:///"):
		return sqlite.Open(sqliteDSN(url[len("sqlite:///"):])), nil
	case strings.HasPrefix(lower, "sqlite://"):
		return sqlite.Open(sqliteDSN(url[len("sqlite://"):])), nil
	default:
		return sqlite.Open(sqliteDSN(url)), nil
	}
}

// Writers take the lock at BEGIN so read-then-write transactions queue on
// the busy timeout instead of failing with SQLITE_BUSY on upgrade.
var sqliteParams = [][2]string{
	{"_txlock", "immediate"},
	{"_journal_mode", "WAL"},
	{"_busy_timeout", "5000"},
}

// sqliteDSN appends the driver parameters the path does not already set.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	for _, p := range sqliteParams {
		if strings.Contains(path, p[0]+"=") {
			continue
		}
		path += sep + p[0] + "=" + p[1]
		sep = "&"
	}
	return path
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
