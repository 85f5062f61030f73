package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"quiz-gen/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationsTable = "schema_migrations"

// Migrator applies the embedded up migrations in version order and records each applied
// version. Oracle cannot run several statements in one Exec, so files are split on ';'.
//
// Oracle commits DDL implicitly, so a migration that fails partway is not rolled back:
// the statements before the failing one stay applied and the version is not recorded.
// The next Up re-runs the file from the top and fails on the first object that already
// exists (ORA-00955). Recovery is manual: drop the objects the failed run created, or
// insert the version into schema_migrations once the remaining statements are applied by
// hand. The error names the failing statement to make that possible.
type Migrator struct {
	db     *sqlx.DB
	source source.Driver
}

// NewMigrator reads migrations from the embedded migrations directory.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigratorFromFS(db, migrationFS, "migrations")
}

// NewMigratorFromFS reads migrations named <version>_<title>.up.sql from fsys/dir.
func NewMigratorFromFS(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, source: src}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.source.Close()
}

// Up applies every migration that has not been recorded yet and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	log := logger.Get()

	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	applied := 0
	version, err := m.source.First()
	for err == nil {
		done, checkErr := m.isApplied(ctx, version)
		if checkErr != nil {
			return applied, checkErr
		}
		if !done {
			if err := m.apply(ctx, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = m.source.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("could not read migration source: %w", err)
	}

	log.Info("Migrations completed", zap.Int("applied", applied))
	return applied, nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	if err := m.db.GetContext(ctx, &count,
		m.db.Rebind(`SELECT COUNT(*) FROM user_tables WHERE table_name = ?`), strings.ToUpper(migrationsTable)); err != nil {
		return fmt.Errorf("could not check migrations table: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, `CREATE TABLE `+migrationsTable+` (
    version    NUMBER(19) NOT NULL,
    applied_at TIMESTAMP  NOT NULL,
    CONSTRAINT pk_schema_migrations PRIMARY KEY (version)
)`)
	if err != nil {
		return fmt.Errorf("could not create migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) isApplied(ctx context.Context, version uint) (bool, error) {
	var count int
	if err := m.db.GetContext(ctx, &count,
		m.db.Rebind(`SELECT COUNT(*) FROM `+migrationsTable+` WHERE version = ?`), version); err != nil {
		return false, fmt.Errorf("could not check migration %d: %w", version, err)
	}
	return count > 0, nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	r, identifier, err := m.source.ReadUp(version)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // down-only version
		}
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	// Oracle DDL commits implicitly; statements are executed one by one and the
	// version row is written only after all of them succeed.
	stmts := SplitStatements(string(body))
	for i, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s (statement %d of %d, earlier statements stay applied): %w",
				version, identifier, i+1, len(stmts), err)
		}
	}

	if _, err := m.db.ExecContext(ctx,
		m.db.Rebind(`INSERT INTO `+migrationsTable+` (version, applied_at) VALUES (?, ?)`),
		version, time.Now().UTC()); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

// SplitStatements splits a SQL script on ';' and drops empty statements and comment-only lines.
func SplitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
