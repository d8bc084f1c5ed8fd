// Command migrate manages database schema migrations.
//
// Usage:
//
//	migrate -cmd up                     apply all pending migrations
//	migrate -cmd down                   roll back all migrations
//	migrate -cmd step -n 1              apply n migrations (negative = down)
//	migrate -cmd version                print current version
//	migrate -cmd force -version 3       force version (repair dirty state)
//	migrate -cmd create -name add_x     create a new migration pair
//	migrate -cmd list                   list available migrations
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/opsuite/backend/internal/infrastructure/config"
	"github.com/opsuite/backend/internal/infrastructure/logger"
	"github.com/opsuite/backend/internal/infrastructure/migration"
)

func main() {
	var (
		cmd      = flag.String("cmd", "up", "command: up, down, step, version, force, create, list")
		steps    = flag.Int("n", 1, "number of steps for the step command")
		forceVer = flag.Int("version", -1, "version for the force command")
		name     = flag.String("name", "", "name for the create command")
		dir      = flag.String("dir", "migrations", "migrations directory")
	)
	flag.Parse()

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*cmd, *steps, *forceVer, *name, *dir, log); err != nil {
		log.Fatal("Migration command failed", zap.String("cmd", *cmd), zap.Error(err))
	}
}

func run(cmd string, steps, forceVer int, name, dir string, log *zap.Logger) error {
	// create and list work without a database connection
	switch cmd {
	case "create":
		up, down, err := migration.CreateMigration(dir, name)
		if err != nil {
			return err
		}
		log.Info("Created migration files",
			zap.String("up", up),
			zap.String("down", down),
		)
		return nil
	case "list":
		migrations, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		if len(migrations) == 0 {
			log.Info("No migrations found", zap.String("dir", dir))
			return nil
		}
		for _, m := range migrations {
			fmt.Println(m)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	migrator, err := migration.New(db, dir, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch cmd {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "step":
		return migrator.Steps(steps)
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	case "force":
		if forceVer < 0 {
			return fmt.Errorf("force requires -version")
		}
		return migrator.Force(forceVer)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
