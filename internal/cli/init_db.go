package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
)

// InitDBCommand creates the catalog tables in a store file. Running it
// against an initialised store is a no-op.
type InitDBCommand struct {
	DatabasePath string
	Verbose      bool

	out io.Writer
	log *zap.Logger
}

func NewInitDBCommand() *InitDBCommand {
	return &InitDBCommand{out: os.Stdout}
}

func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.NewConfig().Database.Path, "Path to the database file (default from DATABASE_PATH)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log SQL statements")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create any missing catalog tables. Existing rows are kept.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s init-db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s init-db -db ./data/library.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.DatabasePath == "" {
		fs.Usage()
		return fmt.Errorf("database path is required")
	}

	return nil
}

func (cmd *InitDBCommand) Run() error {
	absPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	opts := database.Options{LogLevel: logger.Silent}
	if cmd.Verbose {
		if cmd.log == nil {
			if cmd.log, err = zap.NewDevelopment(); err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer func() { _ = cmd.log.Sync() }()
		}
		opts = database.Options{LogLevel: logger.Info, Logger: cmd.log}
	}

	db, err := database.Open(absPath, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	missing := db.MissingTables()
	if err := db.EnsureSchema(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "Database: %s\n", absPath)
	if len(missing) == 0 {
		fmt.Fprintf(cmd.out, "All tables already exist\n")
		return nil
	}
	for _, table := range missing {
		fmt.Fprintf(cmd.out, "  created %s\n", table)
	}
	fmt.Fprintf(cmd.out, "Created %d table(s)\n", len(missing))
	return nil
}
