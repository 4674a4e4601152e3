package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database using environment
// configuration. DATABASE_DRIVER selects "sqlite3" (default) or "postgres";
// sqlite uses DATABASE_PATH (default data/edutrack.db) and postgres uses
// DATABASE_URL.
func Connect() error {
	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = "sqlite3"
	}

	var dsn string
	switch driver {
	case "postgres":
		dsn = os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	default:
		dbPath := os.Getenv("DATABASE_PATH")
		if dbPath == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dbPath = filepath.Join(dataDir, "edutrack.db")
		}
		dsn = dbPath
	}

	return Open(driver, dsn)
}

// Open connects to the given driver/DSN and initializes the schema
func Open(driver, dsn string) error {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// Enable foreign keys
		_, err = db.Exec("PRAGMA foreign_keys = ON")
		if err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Reset deletes all rows from every table. Used by tests to start from a
// clean database, the schema itself is left in place.
func Reset() error {
	for _, table := range []string{"question_retries", "test_sessions", "questions", "students"} {
		if _, err := DB.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to reset table %s: %v", table, err)
		}
	}
	return nil
}

// replacePlaceholders rewrites ? placeholders as $1..$n for PostgreSQL
func replacePlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		serial = "SERIAL PRIMARY KEY"
	}

	// Create students table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id ` + serial + `,
			name TEXT NOT NULL,
			age INTEGER DEFAULT 0,
			supervisor TEXT,
			education_level TEXT,
			completed_sessions INTEGER DEFAULT 0,
			incomplete_sessions INTEGER DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create students table: %v", err)
	}

	// Create questions table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id ` + serial + `,
			question_text TEXT NOT NULL,
			answer_type TEXT,
			correct_answer TEXT,
			images TEXT DEFAULT '[]'
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create questions table: %v", err)
	}

	// Create test_sessions table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS test_sessions (
			id ` + serial + `,
			student_id INTEGER NOT NULL,
			response_type TEXT,
			prompt_used TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			current_question_id INTEGER DEFAULT -1
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create test_sessions table: %v", err)
	}

	// Create question_retries table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS question_retries (
			id ` + serial + `,
			session_id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			retry_count INTEGER DEFAULT 1,
			UNIQUE(session_id, question_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create question_retries table: %v", err)
	}

	return nil
}
