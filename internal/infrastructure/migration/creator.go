package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// migrationStub is rendered into both files of a new pair; only the
// direction differs.
const migrationStub = `-- {{.Version}}_{{.Name}} ({{.Direction}})
{{- if .Note}}
-- {{.Note}}
{{- end}}
-- created {{.CreatedAt}}

`

type stubData struct {
	Version   string
	Name      string
	Note      string
	Direction string
	CreatedAt string
}

// MigrationFile describes a created up/down pair.
type MigrationFile struct {
	Version  string
	Name     string
	Note     string
	UpPath   string
	DownPath string
}

// CreateMigration scaffolds an empty up/down pair in migrationsDir. The
// version prefix is the creation timestamp so files sort in apply order.
func CreateMigration(migrationsDir, name, note string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version: now.Format("20060102150405"),
		Name:    sanitizeName(name),
		Note:    note,
	}
	base := filepath.Join(migrationsDir, mf.Version+"_"+mf.Name)
	mf.UpPath = base + ".up.sql"
	mf.DownPath = base + ".down.sql"

	createdAt := now.Format(time.RFC3339)
	if err := writeStub(mf.UpPath, stubData{mf.Version, mf.Name, mf.Note, "up", createdAt}); err != nil {
		return nil, err
	}
	if err := writeStub(mf.DownPath, stubData{mf.Version, mf.Name, mf.Note, "down", createdAt}); err != nil {
		// never leave a half pair behind
		_ = os.Remove(mf.UpPath)
		return nil, err
	}

	return mf, nil
}

func writeStub(path string, data stubData) error {
	tmpl, err := template.New("migration").Parse(migrationStub)
	if err != nil {
		return fmt.Errorf("parse migration stub: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// sanitizeName lowercases a migration name and collapses separator runs
// to single underscores, dropping anything else.
func sanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			pendingSep = true
		}
	}
	return b.String()
}

// ListMigrations returns the base names of the migration pairs in a
// directory, in version order.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		migrations = append(migrations, strings.TrimSuffix(entry.Name(), ".up.sql"))
	}
	return migrations, nil
}
