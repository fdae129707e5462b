package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/salesdojo/salesdojo/internal/models"

	_ "modernc.org/sqlite"
)

// SQLiteCatalog implements Catalog using modernc.org/sqlite (pure Go, no
// CGO). Only scenarios live here; session state stays in memory.
type SQLiteCatalog struct {
	db *sql.DB
}

// NewSQLiteCatalog opens (or creates) a SQLite database at the given path.
func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single connection
	// serializes all DB access through Go's connection pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

// Migrate creates the scenarios table and seeds the built-in scenarios when
// the table is empty.
func (c *SQLiteCatalog) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		prospect_name TEXT NOT NULL,
		prospect_role TEXT NOT NULL,
		company TEXT NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		company_size TEXT NOT NULL DEFAULT '',
		background TEXT NOT NULL DEFAULT '',
		pain_points TEXT NOT NULL DEFAULT '[]',
		initial_mood TEXT NOT NULL DEFAULT 'neutral',
		difficulty TEXT NOT NULL DEFAULT 'medium',
		sort_order INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("create scenarios table: %w", err)
	}

	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scenarios").Scan(&count); err != nil {
		return fmt.Errorf("count scenarios: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, sc := range BuiltinScenarios() {
		if err := c.put(ctx, sc, i); err != nil {
			return fmt.Errorf("seed scenario %s: %w", sc.ID, err)
		}
	}
	return nil
}

// Put inserts or replaces a scenario. Used by the YAML import command;
// sessions already started keep their snapshot of the old version.
func (c *SQLiteCatalog) Put(ctx context.Context, sc *models.Scenario) error {
	var next int
	if err := c.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(sort_order), -1) + 1 FROM scenarios").Scan(&next); err != nil {
		return fmt.Errorf("next sort order: %w", err)
	}
	return c.put(ctx, sc, next)
}

func (c *SQLiteCatalog) put(ctx context.Context, sc *models.Scenario, order int) error {
	painPoints, err := json.Marshal(sc.PainPoints)
	if err != nil {
		return fmt.Errorf("marshal pain points: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, title, description, prospect_name, prospect_role, company, industry, company_size, background, pain_points, initial_mood, difficulty, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, description=excluded.description,
			prospect_name=excluded.prospect_name, prospect_role=excluded.prospect_role,
			company=excluded.company, industry=excluded.industry,
			company_size=excluded.company_size, background=excluded.background,
			pain_points=excluded.pain_points, initial_mood=excluded.initial_mood,
			difficulty=excluded.difficulty`,
		sc.ID, sc.Title, sc.Description, sc.ProspectName, sc.ProspectRole,
		sc.Company, sc.Industry, sc.CompanySize, sc.Background,
		string(painPoints), string(sc.InitialMood), string(sc.Difficulty), order)
	if err != nil {
		return fmt.Errorf("upsert scenario: %w", err)
	}
	return nil
}

const scenarioColumns = `id, title, description, prospect_name, prospect_role, company, industry, company_size, background, pain_points, initial_mood, difficulty`

// Get returns the scenario with the given id or ErrNotFound.
func (c *SQLiteCatalog) Get(ctx context.Context, id string) (*models.Scenario, error) {
	row := c.db.QueryRowContext(ctx,
		"SELECT "+scenarioColumns+" FROM scenarios WHERE id = ?", id)
	sc, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	return sc, nil
}

// List returns all scenarios in seed/import order.
func (c *SQLiteCatalog) List(ctx context.Context) ([]*models.Scenario, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT "+scenarioColumns+" FROM scenarios ORDER BY sort_order, id")
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []*models.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*models.Scenario, error) {
	var sc models.Scenario
	var painPoints, mood, difficulty string
	err := row.Scan(&sc.ID, &sc.Title, &sc.Description, &sc.ProspectName,
		&sc.ProspectRole, &sc.Company, &sc.Industry, &sc.CompanySize,
		&sc.Background, &painPoints, &mood, &difficulty)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(painPoints), &sc.PainPoints); err != nil {
		return nil, fmt.Errorf("unmarshal pain points: %w", err)
	}
	sc.InitialMood = models.Mood(mood)
	sc.Difficulty = models.Difficulty(difficulty)
	return &sc, nil
}
