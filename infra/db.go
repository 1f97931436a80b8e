package infra

import (
	"database/sql"
	"fmt"

	"github.com/cloudcopper/levelpanel/ports"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // purego sqlite3 driver
)

const (
	DriverSqlite         = "sqlite"
	SourceSqliteInMemory = "file::memory:?cache=shared&_pragma=foreign_keys(1)"
)

// SourceSqliteFile returns source of sqlite database file
func SourceSqliteFile(path string) string {
	return fmt.Sprintf("file:%v?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// NewDatabase opens database and migrates given models
func NewDatabase(log ports.Logger, driver, source string, models ...interface{}) (ports.DB, func(), error) {
	sqlDB, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, err
	}

	dbLogger := slogGorm.New(slogGorm.WithHandler(log.Handler()))
	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
	}

	return db, func() { sqlDB.Close() }, nil
}
