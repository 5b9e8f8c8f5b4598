// Package migrations versions the SQLite schema of the blob store.
package migrations

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"task-editor/internal/logging"
)

//go:embed *.sql
var embedded embed.FS

// stateTable records which versions ran. A row left dirty means a
// migration failed halfway and the file needs attention before te can use it.
const stateTable = "te_schema_migrations"

// Migration is one numbered pair of NNNNNN_name.up.sql / .down.sql files.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrator applies Migrations from a file system to a database.
type Migrator struct {
	db     *sql.DB
	source fs.FS
}

// New returns a Migrator for the embedded schema.
func New(db *sql.DB) *Migrator {
	return &Migrator{db: db, source: embedded}
}

// RunMigrations brings db up to the latest embedded schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return New(db).Up(ctx)
}

// Up applies every migration not yet recorded. It refuses to run while a
// dirty version exists.
func (m *Migrator) Up(ctx context.Context) error {
	state, err := m.state(ctx)
	if err != nil {
		return err
	}
	if dirty := state.dirty(); len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state; failed migration(s): %v", dirty)
	}

	pending, err := m.Load()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	for _, migration := range pending {
		if _, done := state[migration.Version]; done {
			continue
		}
		logging.Debugf("applying migration %d (%s)", migration.Version, migration.Name)
		if err := m.apply(ctx, migration.Up, "INSERT INTO "+stateTable+" (version) VALUES (?)", migration.Version); err != nil {
			m.markDirty(ctx, migration.Version)
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
	}
	return nil
}

// Down reverts the most recently applied migration. It is a no-op on an
// empty database.
func (m *Migrator) Down(ctx context.Context) error {
	state, err := m.state(ctx)
	if err != nil {
		return err
	}
	latest := 0
	for version := range state {
		latest = max(latest, version)
	}
	if latest == 0 {
		return nil
	}

	all, err := m.Load()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	i := slices.IndexFunc(all, func(mig Migration) bool { return mig.Version == latest })
	if i < 0 {
		return fmt.Errorf("no migration file for applied version %d", latest)
	}
	logging.Debugf("reverting migration %d (%s)", latest, all[i].Name)
	if err := m.apply(ctx, all[i].Down, "DELETE FROM "+stateTable+" WHERE version = ?", latest); err != nil {
		return fmt.Errorf("failed to revert migration %d: %w", latest, err)
	}
	return nil
}

// Load reads the migrations in version order.
func (m *Migrator) Load() ([]Migration, error) {
	ups, err := fs.Glob(m.source, "*.up.sql")
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(ups))
	for _, up := range ups {
		version, name, ok := parseFilename(up)
		if !ok {
			continue
		}
		upSQL, err := fs.ReadFile(m.source, up)
		if err != nil {
			return nil, err
		}
		downSQL, err := fs.ReadFile(m.source, strings.TrimSuffix(up, ".up.sql")+".down.sql")
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{Version: version, Name: name, Up: string(upSQL), Down: string(downSQL)})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return migrations, nil
}

// schemaState maps each recorded version to its dirty flag.
type schemaState map[int]bool

func (s schemaState) dirty() []int {
	var versions []int
	for version, dirty := range s {
		if dirty {
			versions = append(versions, version)
		}
	}
	slices.Sort(versions)
	return versions
}

func (m *Migrator) state(ctx context.Context) (schemaState, error) {
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+stateTable+` (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		dirty INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, "SELECT version, dirty FROM "+stateTable)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration state: %w", err)
	}
	defer rows.Close()

	state := schemaState{}
	for rows.Next() {
		var version int
		var dirty bool
		if err := rows.Scan(&version, &dirty); err != nil {
			return nil, fmt.Errorf("failed to read migration state: %w", err)
		}
		state[version] = dirty
	}
	return state, rows.Err()
}

// apply runs script and the bookkeeping statement in one transaction.
func (m *Migrator) apply(ctx context.Context, script, record string, version int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, version); err != nil {
		return err
	}
	return tx.Commit()
}

func (m *Migrator) markDirty(ctx context.Context, version int) {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO "+stateTable+" (version, dirty) VALUES (?, 1) ON CONFLICT(version) DO UPDATE SET dirty = 1",
		version)
	if err != nil {
		logging.Debugf("could not mark migration %d dirty: %v", version, err)
	}
}

// parseFilename splits "000001_create_blobs.up.sql" into 1 and "create_blobs".
func parseFilename(filename string) (int, string, bool) {
	prefix, rest, ok := strings.Cut(strings.TrimSuffix(filename, ".up.sql"), "_")
	if !ok {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, rest, true
}
