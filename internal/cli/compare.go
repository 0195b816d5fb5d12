package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/atlas/internal/config"
	"github.com/mrlokans/atlas/internal/countries"
)

// CompareCommand fetches two country profiles concurrently and prints which
// one has the larger population.
type CompareCommand struct {
	Country1 string
	Country2 string
	BaseURL  string
}

func NewCompareCommand() *CompareCommand {
	return &CompareCommand{}
}

func (cmd *CompareCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)

	fs.StringVar(&cmd.Country1, "country1", "", "First country name (required)")
	fs.StringVar(&cmd.Country2, "country2", "", "Second country name (required)")
	fs.StringVar(&cmd.BaseURL, "base-url", config.DefaultCountriesBaseURL, "REST Countries API root")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s compare -country1 <name> -country2 <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compare the populations of two countries. Both profiles are fetched\n")
		fmt.Fprintf(os.Stderr, "concurrently; the command fails if either lookup fails.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s compare -country1 China -country2 India\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Country1 == "" || cmd.Country2 == "" {
		return fmt.Errorf("both -country1 and -country2 are required")
	}

	return nil
}

func (cmd *CompareCommand) Run() error {
	comparator := countries.NewComparator(countries.NewClient(cmd.BaseURL))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := comparator.Compare(ctx, cmd.Country1, cmd.Country2)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d\n", result.Country1.Name, result.Country1.Population)
	fmt.Printf("%s: %d\n", result.Country2.Name, result.Country2.Population)
	fmt.Println()
	fmt.Println(result.Message)
	return nil
}
