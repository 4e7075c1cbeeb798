package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB holds the database connection
var DB *sql.DB

// driverName is either "pgx" or "sqlite3", chosen by InitDB.
var driverName string

// InitDB initializes the database connection from environment variables.
// DATABASE_URL (or the DB_* variables) selects Postgres via pgx; otherwise
// the service runs on a local SQLite file (SQLITE_PATH, default inventory.db).
func InitDB() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Build a Postgres connection string from individual variables
		host := os.Getenv("DB_HOST")
		user := os.Getenv("DB_USER")
		dbname := os.Getenv("DB_NAME")

		if host != "" && user != "" && dbname != "" {
			port := os.Getenv("DB_PORT")
			if port == "" {
				port = "5432"
			}
			sslmode := os.Getenv("DB_SSLMODE")
			if sslmode == "" {
				sslmode = "disable"
			}
			connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode)
		}
	}

	driverName = "pgx"
	if connStr == "" {
		// Single-node mode: SQLite file next to the binary
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "inventory.db"
		}
		driverName = "sqlite3"
		connStr = path
	}

	var err error
	DB, err = sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Database connection established (driver=%s)", driverName)
	return nil
}

// Driver returns the active driver name ("pgx" or "sqlite3").
func Driver() string {
	return driverName
}

// Rebind rewrites ? placeholders to $N for the pgx driver so repositories
// can share one SQL text across both drivers. SQLite takes ? as-is.
func Rebind(query string) string {
	if driverName != "pgx" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
