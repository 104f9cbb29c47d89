package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens a sqlite database and applies the given schema to it.
// a `<scheme>://` source is routed to the libsql driver so a remote
// turso database can stand in for the local file.
func OpenDB(schema, source string) (*sql.DB, error) {
	driver := "sqlite"
	if strings.Contains(source, "://") {
		driver = "libsql"
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}
	if source == ":memory:" {
		// every new connection would otherwise get its own empty
		// in-memory database
		db.SetMaxOpenConns(1)
	}
	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}
