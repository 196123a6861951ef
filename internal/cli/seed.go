package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"clubvenue/internal/domain/entities"
	"clubvenue/internal/infrastructure/database"
)

// venueSeed is one entry of the venue catalogue file.
type venueSeed struct {
	Name        string   `yaml:"name"`
	Capacity    int      `yaml:"capacity"`
	Location    string   `yaml:"location"`
	Facilities  []string `yaml:"facilities"`
	Description string   `yaml:"description"`
	Active      *bool    `yaml:"active"`
}

type venueCatalogue struct {
	Venues []venueSeed `yaml:"venues"`
}

// parseVenueCatalogue reads and validates a YAML catalogue. Names must be unique.
func parseVenueCatalogue(r io.Reader) ([]entities.Venue, error) {
	var cat venueCatalogue
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode venue catalogue: %w", err)
	}

	seen := make(map[string]bool, len(cat.Venues))
	out := make([]entities.Venue, 0, len(cat.Venues))
	for i, s := range cat.Venues {
		name := strings.TrimSpace(s.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("venue #%d: name is required", i+1)
		case s.Capacity <= 0:
			return nil, fmt.Errorf("venue %q: capacity must be positive", name)
		case seen[strings.ToLower(name)]:
			return nil, fmt.Errorf("venue %q: listed twice", name)
		}
		seen[strings.ToLower(name)] = true

		active := true
		if s.Active != nil {
			active = *s.Active
		}
		out = append(out, entities.Venue{
			Name:        name,
			Capacity:    s.Capacity,
			Location:    s.Location,
			Facilities:  strings.Join(s.Facilities, ","),
			Description: s.Description,
			Active:      active,
		})
	}
	return out, nil
}

func NewSeedVenuesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "seed-venues <catalogue.yaml>",
		Short:   "Create or update venues from a YAML catalogue",
		Example: `  clubvenue seed-venues deploy/venues.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			venues, err := parseVenueCatalogue(f)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pool, err := database.NewPool(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := database.NewVenueRepository(pool)
			for i := range venues {
				if err := repo.UpsertByName(cmd.Context(), &venues[i]); err != nil {
					return fmt.Errorf("seed %q: %w", venues[i].Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s (id=%d, capacity=%d)\n", venues[i].Name, venues[i].ID, venues[i].Capacity)
			}
			return nil
		},
	}
}
