package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var nonSlugRe = regexp.MustCompile(`[^a-z0-9_]+`)

// migrationTemplate keeps new files in the shape ValidateDir expects: both
// directions wrapped in StatementBegin/End, so plpgsql bodies survive goose.
const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- daypass: %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- daypass: revert %[1]s
-- +goose StatementEnd
`

// slug turns "Add Batch Notes!" into "add_batch_notes".
func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugRe.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "_")
	return strings.Trim(s, "_")
}

// MigrationFilename is the goose file name for name at time at.
func MigrationFilename(name string, at time.Time) (string, error) {
	s := slug(name)
	if s == "" {
		return "", fmt.Errorf("name %q has no usable characters", name)
	}
	return fmt.Sprintf("%s_%s.sql", at.UTC().Format(versionLayout), s), nil
}

// CreateSQLMigration writes an empty goose migration into dir and returns its
// path. It refuses to overwrite an existing file.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	filename, err := MigrationFilename(name, time.Now())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("migration already exists: %s", path)
		}
		return "", fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, migrationTemplate, slug(name)); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}
