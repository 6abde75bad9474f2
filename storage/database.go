package storage

import (
	"braindumpBackend/config"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database. SQLite is used for local development,
// PostgreSQL otherwise.
func Connect(config *config.BrainDumpConfig, useLocalDatabase bool) (*gorm.DB, error) {
	if useLocalDatabase {
		log.Info("Connecting to local SQLite database", "path", config.Database.LocalFile)
		return OpenSqlite(config.Database.LocalFile + "?_pragma=foreign_keys(1)")
	}

	connection := fmt.Sprintf("%s@%s:%d/%s", config.Database.User, config.Database.Host, config.Database.Port, config.Database.Database)
	log.Info("Connecting to remote PostgreSQL database", "conn", connection)

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		config.Database.Host,
		config.Database.User,
		os.Getenv("BD_DATABASE_PASSWORD"),
		config.Database.Database,
		config.Database.Port,
		config.Database.SslMode,
	)

	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// OpenSqlite opens a SQLite database with a single connection. Foreign keys must be
// enabled through the DSN for cascading deletes to work.
func OpenSqlite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// OpenMemory opens a private in-memory database, used by tests and the seed command.
func OpenMemory() (*gorm.DB, error) {
	return OpenSqlite(":memory:?_pragma=foreign_keys(1)")
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// Migrate creates or updates the tables of the given models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		log.Errorf("[DB] Failed to migrate database schema. Error: %s", err.Error())
		return err
	}
	return nil
}
