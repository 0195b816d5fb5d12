package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/atlas/internal/config"
	"github.com/mrlokans/atlas/internal/countries"
)

// LookupCommand fetches a single country profile from the REST Countries API
// and prints it to stdout.
type LookupCommand struct {
	Name    string
	BaseURL string
	JSON    bool
}

func NewLookupCommand() *LookupCommand {
	return &LookupCommand{}
}

func (cmd *LookupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)

	fs.StringVar(&cmd.Name, "name", "", "Full country name to look up (required)")
	fs.StringVar(&cmd.BaseURL, "base-url", config.DefaultCountriesBaseURL, "REST Countries API root")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the profile as JSON instead of plain text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lookup -name <country> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Look up a country profile (capital, population, region) by its full name.\n")
		fmt.Fprintf(os.Stderr, "Matching is case-insensitive on the API side.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s lookup -name Japan\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s lookup -name \"United States\" -json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}

	return nil
}

func (cmd *LookupCommand) Run() error {
	client := countries.NewClient(cmd.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	country, err := client.Fetch(ctx, cmd.Name)
	if err != nil {
		return err
	}

	if cmd.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(country)
	}

	fmt.Printf("Name:       %s\n", country.Name)
	fmt.Printf("Capital:    %s\n", country.Capital)
	fmt.Printf("Population: %d\n", country.Population)
	fmt.Printf("Region:     %s\n", country.Region)
	return nil
}
