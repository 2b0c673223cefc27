package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fintrack-be/internal/entities"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Options selects and tunes the relational store
type Options struct {
	Driver        string
	URL           string // postgres connection string
	SQLitePath    string // sqlite file, or ":memory:"
	SlowThreshold time.Duration
}

// Open connects to the configured store, brings its schema up to date and wraps it in gorm
func Open(opts Options) (*gorm.DB, error) {
	switch opts.Driver {
	case DriverPostgres, "":
		db, err := NewConnection(opts.URL)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), gormConfig(opts))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return gdb, nil
	case DriverSQLite:
		return OpenSQLite(opts.SQLitePath, gormConfig(opts))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// NewConnection creates a new database connection
func NewConnection(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to database", "driver", DriverPostgres)
	return db, nil
}

// RunMigrations runs the embedded database migrations using goose
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database migrations completed")
	return nil
}

// OpenSQLite opens an embedded store and creates the schema from the entity models.
// A single connection is kept so ":memory:" databases survive across queries.
func OpenSQLite(path string, cfg *gorm.Config) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	if cfg == nil {
		cfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}

	gdb, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(entities.All()...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	return gdb, nil
}

// Close releases the pool behind gdb
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig(opts Options) *gorm.Config {
	threshold := opts.SlowThreshold
	if threshold <= 0 {
		threshold = 200 * time.Millisecond
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.NewSlogLogger(slog.Default(), logger.Config{
			SlowThreshold:             threshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}
