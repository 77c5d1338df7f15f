package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alias1177/WinGo-Predictor/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS graded_predictions (
			period TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			num INT NOT NULL,
			confidence INT NOT NULL,
			rationale TEXT NOT NULL,
			bias TEXT NOT NULL,
			result TEXT NOT NULL,
			drawn_num INT NOT NULL,
			graded_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// ArchiveGraded stores one settled prediction together with the round
// that settled it. Re-archiving the same period is a no-op.
func (db *DB) ArchiveGraded(p models.Prediction, obs models.Observation) error {
	_, err := db.Exec(`
		INSERT INTO graded_predictions (
			period, category, num, confidence, rationale, bias, result, drawn_num, graded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (period) DO NOTHING
	`,
		p.Period, string(p.Category), p.Number, p.Confidence,
		p.Rationale.Label(), string(p.Bias), string(p.Result),
		obs.Number, time.Now().UTC(),
	)
	return err
}
