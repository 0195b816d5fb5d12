package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/config"
	"github.com/mrlokans/atlas/internal/database"
	auditdb "github.com/mrlokans/atlas/internal/database/audit"
)

// AuditCleanupCommand deletes audit events older than the retention window.
type AuditCleanupCommand struct {
	DatabasePath  string
	RetentionDays int
	DryRun        bool
}

func NewAuditCleanupCommand() *AuditCleanupCommand {
	return &AuditCleanupCommand{}
}

func (cmd *AuditCleanupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit-cleanup", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.RetentionDays, "days", 30, "Delete events older than this many days")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show how many events would be deleted without deleting them")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s audit-cleanup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete audit events older than the retention window. The running server\n")
		fmt.Fprintf(os.Stderr, "does this on a schedule; this command is for one-off maintenance.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s audit-cleanup -days 7\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s audit-cleanup -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.RetentionDays <= 0 {
		return fmt.Errorf("-days must be positive")
	}

	return nil
}

func (cmd *AuditCleanupCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := auditdb.NewRepository(db.DB)
	retention := time.Duration(cmd.RetentionDays) * 24 * time.Hour

	if cmd.DryRun {
		count, err := repo.CountOlderThan(time.Now().UTC().Add(-retention))
		if err != nil {
			return fmt.Errorf("failed to count old events: %w", err)
		}
		fmt.Printf("Would delete %d events older than %d days\n", count, cmd.RetentionDays)
		return nil
	}

	deleted, err := audit.NewService(repo).DeleteOldEvents(retention)
	if err != nil {
		return fmt.Errorf("failed to delete old events: %w", err)
	}

	fmt.Printf("Deleted %d events older than %d days\n", deleted, cmd.RetentionDays)
	return nil
}
