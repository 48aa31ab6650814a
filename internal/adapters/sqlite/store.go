package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lcatrace/internal/application"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// MemoryPath opens a private in-memory inventory
const MemoryPath = ":memory:"

// Store implements ports.InventoryStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements InventoryStore
var _ ports.InventoryStore = (*Store)(nil)

// NewStore creates a new SQLite inventory store
func NewStore() *Store {
	return &Store{}
}

// Open initializes the store at dbPath, creating its directory and schema.
// MemoryPath opens a private in-memory database.
func (s *Store) Open(dbPath string) error {
	if dbPath == "" {
		return errors.New("database path is required")
	}

	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	dsn := MemoryPath
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		// WAL mode for concurrent readers while importing
		dsn = "file:" + dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == MemoryPath {
		// Every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	s.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS activities (
			db TEXT NOT NULL,
			code TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			categories TEXT NOT NULL DEFAULT '[]',
			type TEXT NOT NULL DEFAULT 'process',
			PRIMARY KEY (db, code)
		);
		CREATE TABLE IF NOT EXISTS exchanges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			output_database TEXT NOT NULL,
			output_code TEXT NOT NULL,
			input_database TEXT NOT NULL,
			input_code TEXT NOT NULL,
			amount REAL NOT NULL,
			type TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS methods (
			name TEXT PRIMARY KEY
		);
		CREATE TABLE IF NOT EXISTS characterization (
			method TEXT NOT NULL REFERENCES methods(name) ON DELETE CASCADE,
			flow_database TEXT NOT NULL,
			flow_code TEXT NOT NULL,
			factor REAL NOT NULL,
			PRIMARY KEY (method, flow_database, flow_code)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_exchanges_output ON exchanges(output_database, output_code);
		CREATE INDEX IF NOT EXISTS idx_activities_name ON activities(name);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.checkSchema(); err != nil {
		db.Close()
		return err
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (s *Store) Path() string {
	return s.dbPath
}

// checkSchema stamps a fresh database and refuses one written by an
// incompatible schema
func (s *Store) checkSchema() error {
	var version string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("database %s has schema version %s, expected %s", s.dbPath, version, schemaVersion)
	}
	return nil
}

const activityColumns = `db, code, name, unit, location, categories, type`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var categories, activityType string
	if err := row.Scan(&a.Key.Database, &a.Key.Code, &a.Name, &a.Unit, &a.Location, &categories, &activityType); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categories), &a.Categories); err != nil {
		return nil, fmt.Errorf("corrupt categories of %s: %w", a.Key, err)
	}
	if len(a.Categories) == 0 {
		a.Categories = nil
	}
	a.Type = domain.ActivityType(activityType)
	return &a, nil
}

// Activity retrieves an activity by key
func (s *Store) Activity(key domain.Key) (*domain.Activity, error) {
	row := s.db.QueryRow(`
		SELECT `+activityColumns+`
		FROM activities WHERE db = ? AND code = ?
	`, key.Database, key.Code)

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.NotFoundError{Kind: "activity", ID: key.String()}
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Exchanges returns the exchanges of an activity in insertion order
func (s *Store) Exchanges(key domain.Key) ([]domain.Exchange, error) {
	rows, err := s.db.Query(`
		SELECT input_database, input_code, amount, type
		FROM exchanges
		WHERE output_database = ? AND output_code = ?
		ORDER BY id
	`, key.Database, key.Code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []domain.Exchange
	for rows.Next() {
		e := domain.Exchange{Output: key}
		var role string
		if err := rows.Scan(&e.Input.Database, &e.Input.Code, &e.Amount, &role); err != nil {
			return nil, err
		}
		e.Role = domain.Role(role)
		exchanges = append(exchanges, e)
	}

	return exchanges, rows.Err()
}

// Activities returns every activity ordered by key
func (s *Store) Activities() ([]domain.Activity, error) {
	return s.queryActivities(`SELECT ` + activityColumns + ` FROM activities ORDER BY db, code`)
}

// Search performs a case-insensitive substring match on name, location and key
func (s *Store) Search(query string) ([]domain.Activity, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Activities()
	}
	pattern := "%" + escapeLike(query) + "%"
	return s.queryActivities(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE name LIKE ?1 ESCAPE '\'
			OR location LIKE ?1 ESCAPE '\'
			OR (db || '/' || code) LIKE ?1 ESCAPE '\'
		ORDER BY db, code
	`, pattern)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *Store) queryActivities(query string, args ...any) ([]domain.Activity, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}

	return activities, rows.Err()
}

// Methods returns the registered methods, sorted
func (s *Store) Methods() ([]domain.Method, error) {
	rows, err := s.db.Query(`SELECT name FROM methods ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.Method
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		methods = append(methods, domain.Method(name))
	}

	return methods, rows.Err()
}

// CharacterizationFactors returns the factors of a method
func (s *Store) CharacterizationFactors(method domain.Method) (map[domain.Key]float64, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM methods WHERE name = ?`, string(method)).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.NotFoundError{Kind: "method", ID: string(method)}
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT flow_database, flow_code, factor
		FROM characterization WHERE method = ?
	`, string(method))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	factors := make(map[domain.Key]float64)
	for rows.Next() {
		var k domain.Key
		var factor float64
		if err := rows.Scan(&k.Database, &k.Code, &factor); err != nil {
			return nil, err
		}
		factors[k] = factor
	}

	return factors, rows.Err()
}

// BeginTx starts a new transaction
func (s *Store) BeginTx() (ports.GraphWriter, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &storeTx{tx: tx}, nil
}
