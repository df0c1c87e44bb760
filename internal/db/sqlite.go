package db

import (
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var DB *sqlx.DB

// DBPath resolves the SQLite file location. The default matches the
// database name the mobile client shipped with.
func DBPath() string {
	if path := os.Getenv("BLACKBOX_DB_PATH"); path != "" {
		return path
	}
	return "blackbox.db"
}

// InitSQLite opens the sqlx handle used for raw aggregate queries. The
// GORM handle (see orm.go) owns migrations; this one only reads.
func InitSQLite() error {
	var err error

	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("sqlite3", DBPath())
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
