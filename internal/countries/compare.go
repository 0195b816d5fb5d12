package countries

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CountryProvider supplies country profiles for comparison.
type CountryProvider interface {
	Fetch(ctx context.Context, name string) (*Country, error)
}

// ComparisonResult pairs two country profiles with their absolute
// population difference and a human-readable verdict.
type ComparisonResult struct {
	Country1             Country `json:"country1"`
	Country2             Country `json:"country2"`
	PopulationDifference int64   `json:"population_difference"`
	Message              string  `json:"message"`
}

// Comparator compares the populations of two countries.
type Comparator struct {
	provider CountryProvider
}

func NewComparator(provider CountryProvider) *Comparator {
	return &Comparator{provider: provider}
}

// Compare fetches both countries concurrently and reports which one has the
// larger population. The first lookup error cancels the other lookup and is
// returned as-is; no partial result is ever produced.
func (c *Comparator) Compare(ctx context.Context, name1, name2 string) (*ComparisonResult, error) {
	if name1 == "" || name2 == "" {
		return nil, fmt.Errorf("two country names are required")
	}

	var first, second *Country

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		country, err := c.provider.Fetch(ctx, name1)
		if err != nil {
			return err
		}
		first = country
		return nil
	})
	g.Go(func() error {
		country, err := c.provider.Fetch(ctx, name2)
		if err != nil {
			return err
		}
		second = country
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	difference := first.Population - second.Population
	if difference < 0 {
		difference = -difference
	}

	return &ComparisonResult{
		Country1:             *first,
		Country2:             *second,
		PopulationDifference: difference,
		Message:              comparisonMessage(first, second, difference),
	}, nil
}

func comparisonMessage(first, second *Country, difference int64) string {
	if difference == 0 {
		return fmt.Sprintf("%s and %s have equal populations.", first.Name, second.Name)
	}
	larger := first
	if second.Population > first.Population {
		larger = second
	}
	return fmt.Sprintf("%s has a larger population by %s people.", larger.Name, formatPopulation(difference))
}

// formatPopulation renders n with thousands separators, e.g. 2734198
// becomes "2,734,198".
func formatPopulation(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
