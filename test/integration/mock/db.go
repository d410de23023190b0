// Package mock provides in-process stand-ins for the external systems the
// integration suite talks to: the database, Redis and the Telegram Bot API.
package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spaarbot/backend/internal/integration/persistence/model"
)

var (
	dbOnce sync.Once
	dbConn *gorm.DB
)

// migratedModels lists every table in foreign-key-safe creation order.
func migratedModels() []any {
	return []any{
		&model.UserModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.SubscriptionModel{},
		&model.ChatMessageModel{},
	}
}

// NewDb opens a shared in-memory SQLite database with the full schema
// migrated. The connection is created once and reused across scenarios;
// callers reset state with ClearDb.
func NewDb() *gorm.DB {
	dbOnce.Do(func() {
		sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
		if err != nil {
			panic("failed to open test database: " + err.Error())
		}
		sqlDB.SetMaxOpenConns(1)

		conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic("failed to connect to test database: " + err.Error())
		}

		if err := conn.AutoMigrate(migratedModels()...); err != nil {
			panic("failed to migrate test database: " + err.Error())
		}

		dbConn = conn
	})

	return dbConn
}

// ClearDb deletes every row so each scenario starts from an empty database.
// Tables are wiped in reverse creation order to respect foreign keys.
func ClearDb(conn *gorm.DB) error {
	models := migratedModels()
	for i := len(models) - 1; i >= 0; i-- {
		err := conn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(models[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
