// Command mapctl runs the data-mapping engine from the command line.
//
// Usage:
//
//	mapctl -cmd transform -provider stripe -entity customer -input record.json
//	mapctl -cmd test -rule stripe-customer-to-customer -input record.json
//	mapctl -cmd rules
//	mapctl -cmd transforms
//
// The record is read from -input (a JSON object), or from stdin when -input
// is "-". The transformation result is written to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	mappingapp "github.com/opsuite/backend/internal/application/mapping"
	"github.com/opsuite/backend/internal/domain/mapping"
	"github.com/opsuite/backend/internal/infrastructure/config"
	"github.com/opsuite/backend/internal/infrastructure/logger"
	"github.com/opsuite/backend/internal/infrastructure/persistence"
	"github.com/opsuite/backend/internal/infrastructure/registry"
)

func main() {
	var (
		cmd      = flag.String("cmd", "transform", "command: transform, test, rules, transforms")
		provider = flag.String("provider", "", "source provider (e.g. stripe)")
		entity   = flag.String("entity", "", "source entity type (e.g. customer)")
		ruleID   = flag.String("rule", "", "rule id for the test command")
		input    = flag.String("input", "-", "path to JSON record, or - for stdin")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(*cmd, *provider, *entity, *ruleID, *input, cfg, log); err != nil {
		log.Fatal("Command failed", zap.String("cmd", *cmd), zap.Error(err))
	}
}

func run(cmd, provider, entity, ruleID, input string, cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	transforms := mapping.NewTransformRegistry()

	// Select the rule store backend
	var rules mapping.RuleRegistry
	switch cfg.Mapping.Store {
	case "database":
		db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		rules = persistence.NewMappingRuleRepository(db.DB, transforms)
	default:
		rules = registry.NewMemoryRuleRegistry()
	}

	ruleService := mappingapp.NewRuleService(rules, transforms, log)
	transformService := mappingapp.NewTransformationService(rules, log)

	if cfg.Mapping.SeedDefaults {
		seeded, err := ruleService.InitializeDefaultMappings(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed default mappings: %w", err)
		}
		log.Debug("Default mappings initialized", zap.Int("seeded", seeded))
	}

	switch cmd {
	case "transform":
		if provider == "" || entity == "" {
			return fmt.Errorf("transform requires -provider and -entity")
		}
		record, err := readRecord(input)
		if err != nil {
			return err
		}
		return printJSON(transformService.Transform(ctx, provider, entity, record))

	case "test":
		if ruleID == "" {
			return fmt.Errorf("test requires -rule")
		}
		record, err := readRecord(input)
		if err != nil {
			return err
		}
		return printJSON(transformService.TestRule(ctx, ruleID, record))

	case "rules":
		list, err := ruleService.ListRules(ctx)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "transforms":
		return printJSON(transforms.Names())

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// readRecord reads a single JSON object from path, or stdin when path is "-".
func readRecord(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record JSON: %w", err)
	}
	return record, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
