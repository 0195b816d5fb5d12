package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/atlas/internal/config"
	"github.com/mrlokans/atlas/internal/database"
	favouritesdb "github.com/mrlokans/atlas/internal/database/favourites"
	"github.com/mrlokans/atlas/internal/demo"
)

// SeedCommand fills an empty database with sample favourites.
type SeedCommand struct {
	DatabasePath string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to seed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert sample favourites into an empty database for local development.\n")
		fmt.Fprintf(os.Stderr, "A database that already holds favourites is left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Seeding database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	inserted, err := demo.NewSeeder(favouritesdb.NewRepository(db.DB)).Seed()
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	if inserted == 0 {
		fmt.Println("Database already has favourites, nothing to do")
		return nil
	}

	fmt.Printf("Inserted %d sample favourites\n", inserted)
	return nil
}
