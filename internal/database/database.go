package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

// catalogModels are the five catalog tables plus the change journal.
var catalogModels = []any{
	&entities.User{},
	&entities.Book{},
	&entities.Author{},
	&entities.UserBook{},
	&entities.BookAuthor{},
	&entities.AuditEvent{},
}

// CatalogTables lists the table names EnsureSchema guarantees.
var CatalogTables = []string{
	entities.TableUser,
	entities.TableBook,
	entities.TableAuthor,
	entities.TableUserBook,
	entities.TableBookAuthor,
	"audit_events",
}

type Database struct {
	DB *gorm.DB
}

// Options tune how the store file is opened.
type Options struct {
	LogLevel logger.LogLevel
	Logger   *zap.Logger // defaults to a no-op logger
}

// NewDatabase opens the store and makes sure every catalog table exists.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithOptions(dbPath, Options{LogLevel: logger.Warn})
}

func NewDatabaseWithOptions(dbPath string, opts Options) (*Database, error) {
	database, err := Open(dbPath, opts)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

// Open connects to the store file without touching the schema.
func Open(dbPath string, opts Options) (*Database, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	gormLogger := logger.New(zapWriter{opts.Logger.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  opts.LogLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

// EnsureSchema creates any missing catalog table. Existing tables and rows
// are left untouched apart from added columns and indexes.
func (d *Database) EnsureSchema() error {
	if err := d.DB.AutoMigrate(catalogModels...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// MissingTables reports which catalog tables do not exist yet.
func (d *Database) MissingTables() []string {
	var missing []string
	migrator := d.DB.Migrator()
	for _, table := range CatalogTables {
		if !migrator.HasTable(table) {
			missing = append(missing, table)
		}
	}
	return missing
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dsn enables foreign keys and makes write transactions take the lock up
// front, so concurrent check-then-write sequences queue on busy_timeout
// instead of failing when upgrading a read lock.
func dsn(dbPath string) string {
	params := "_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:") {
		return "file::memory:?cache=shared&" + params
	}
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + params
	}
	return dbPath + "?" + params
}

// zapWriter lets gorm's logger print through zap.
type zapWriter struct {
	l *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...any) {
	w.l.Warnf(format, args...)
}
