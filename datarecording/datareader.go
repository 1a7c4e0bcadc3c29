package datarecording

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteReader reads recorded tables back from a SQLite database.
type SQLiteReader struct {
	*sql.DB

	dbName string
}

// NewSQLiteReader creates a SQLiteReader over path + ".sqlite3". Call Init
// before use.
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{dbName: path}
}

// Init establishes a connection to the database.
func (r *SQLiteReader) Init() {
	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err != nil {
		panic(fmt.Errorf("database %s does not exist", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

// ListTables returns the names of all tables in the database.
func (r *SQLiteReader) ListTables() []string {
	rows, err := r.Query(
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name;")
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			panic(err)
		}
		tables = append(tables, name)
	}

	return tables
}
