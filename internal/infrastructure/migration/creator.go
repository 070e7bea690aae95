package migration

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const migrationTemplate = `-- {{.Name}}{{if .Down}} (rollback){{end}}
-- Created: {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`

var fileTemplate = template.Must(template.New("migration").Parse(migrationTemplate))

// MigrationFile describes a created up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes the next numbered up/down pair (000002_<name>.up.sql, ...)
// into dir, after the highest version already present.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, fmt.Errorf("invalid migration name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	next := 1
	if n := len(existing); n > 0 {
		next = versionOf(existing[n-1]) + 1
	}

	mf := &MigrationFile{
		Version:     fmt.Sprintf("%06d", next),
		Name:        name,
		Description: description,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	stem := mf.Version + "_" + base
	mf.UpPath = filepath.Join(dir, stem+".up.sql")
	mf.DownPath = filepath.Join(dir, stem+".down.sql")

	if err := writeMigrationFile(mf.UpPath, mf, false); err != nil {
		return nil, err
	}
	if err := writeMigrationFile(mf.DownPath, mf, true); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeMigrationFile(path string, mf *MigrationFile, down bool) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	data := struct {
		*MigrationFile
		Down bool
	}{mf, down}
	if err := fileTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sanitizeName lowercases name and joins its words with underscores
func sanitizeName(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, w)
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, "_")
}

// ListMigrations returns the migration stems found in fsys, ordered by version
func ListMigrations(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	stems := make([]string, 0, len(matches))
	for _, m := range matches {
		stems = append(stems, strings.TrimSuffix(m, ".up.sql"))
	}
	sort.Slice(stems, func(i, j int) bool { return versionOf(stems[i]) < versionOf(stems[j]) })
	return stems, nil
}

func versionOf(stem string) int {
	prefix, _, _ := strings.Cut(stem, "_")
	v, _ := strconv.Atoi(prefix)
	return v
}
