package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"candlepin/internal/shared/logger"
)

var migrationName = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator writes empty migration files into the source tree. Both script
// flavours are created so the strategies stay in step.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator takes the path of the scripts directory holding the goose
// and migrate subdirectories.
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.Named("migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration returns the paths of the created files.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	if !migrationName.MatchString(name) {
		return nil, fmt.Errorf("migration name %q must be lower snake case", name)
	}

	now := g.now().UTC()
	version := now.Format("20060102150405")
	created := now.Format("2006-01-02 15:04:05")

	files := map[string]string{
		filepath.Join(g.scriptsPath, "goose", fmt.Sprintf("%s_%s.sql", version, name)): fmt.Sprintf(
			"-- Migration: %s\n-- Created: %s\n\n-- +goose Up\n\n-- +goose Down\n", name, created),
		filepath.Join(g.scriptsPath, "migrate", fmt.Sprintf("%s_%s.up.sql", version, name)): fmt.Sprintf(
			"-- Migration: %s\n-- Created: %s\n", name, created),
		filepath.Join(g.scriptsPath, "migrate", fmt.Sprintf("%s_%s.down.sql", version, name)): fmt.Sprintf(
			"-- Rollback: %s\n-- Created: %s\n", name, created),
	}

	paths := make([]string, 0, len(files))
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create scripts directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	g.logger.Infow("migration files created", "name", name, "version", version)
	return paths, nil
}
