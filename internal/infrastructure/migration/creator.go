package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CreateMigration creates a new pair of up/down migration files
// named <timestamp>_<name>.{up,down}.sql under migrationsPath.
func CreateMigration(migrationsPath, name string) (string, string, error) {
	if name == "" {
		return "", "", fmt.Errorf("migration name cannot be empty")
	}

	name = sanitizeName(name)
	timestamp := time.Now().Format("20060102150405")

	if err := os.MkdirAll(migrationsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create migrations directory: %w", err)
	}

	upFile := filepath.Join(migrationsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downFile := filepath.Join(migrationsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	upContent := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n-- Write your UP migration here\n",
		name, time.Now().Format(time.RFC3339))
	downContent := fmt.Sprintf("-- Rollback: %s\n-- Created: %s\n\n-- Write your DOWN migration here\n",
		name, time.Now().Format(time.RFC3339))

	if err := os.WriteFile(upFile, []byte(upContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(downFile, []byte(downContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write down migration: %w", err)
	}

	return upFile, downFile, nil
}

// ListMigrations returns the sorted base names of all .up.sql files
// under migrationsPath.
func ListMigrations(migrationsPath string) ([]string, error) {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			migrations = append(migrations, strings.TrimSuffix(entry.Name(), ".up.sql"))
		}
	}

	sort.Strings(migrations)
	return migrations, nil
}

// sanitizeName converts a free-form name into a safe snake_case file name.
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
