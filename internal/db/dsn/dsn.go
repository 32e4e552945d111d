// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/fleamarket/fleamarket/internal/config"
)

// sqlitePragmas turns on foreign key enforcement and waits on a locked
// database instead of failing immediately.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Create builds the Data Source Name for the configured gorm engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.GormEngine {
	case config.EngineMySQL:
		return MySQL(dbCfg)
	case config.EnginePostgres:
		return Postgres(dbCfg)
	default:
		return SQLite(dbCfg.DB.Path)
	}
}

// MySQL builds a go-sql-driver/mysql DSN.
func MySQL(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// Postgres builds a pgx keyword/value DSN.
func Postgres(dbCfg *config.Config) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
	)

	if dbCfg.DB.Extras != "" {
		out += " " + dbCfg.DB.Extras
	}

	return out
}

// SQLite appends the connection pragmas to a database file path.
func SQLite(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}

	return path + "?" + sqlitePragmas
}
