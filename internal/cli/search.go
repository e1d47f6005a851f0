package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mustaphathe3rd/neighbourhood/internal/region"
	"github.com/mustaphathe3rd/neighbourhood/internal/searcher"
	"github.com/mustaphathe3rd/neighbourhood/internal/storage"
	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [product name]",
	Short: "Search product prices across stores",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("sort", "price_asc", "Sort strategy: price_asc, price_desc, rating_desc, distance_asc")
	searchCmd.Flags().Float64("lat", 0, "Searcher latitude (requires --lon)")
	searchCmd.Flags().Float64("lon", 0, "Searcher longitude (requires --lat)")
	searchCmd.Flags().Int("radius", 0, "Search radius in km (requires coordinates)")
	searchCmd.Flags().Int64("city", 0, "Restrict to one city id")
	searchCmd.Flags().Int("limit", 0, "Maximum results to print (0 = all)")
	searchCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	srch, store, err := openEngine()
	if err != nil {
		return err
	}
	defer store.Close()

	query := types.SearchQuery{Text: args[0]}

	sortBy, _ := cmd.Flags().GetString("sort")
	query.SortBy = types.SortStrategy(sortBy)

	if cmd.Flags().Changed("lat") {
		lat, _ := cmd.Flags().GetFloat64("lat")
		query.Lat = &lat
	}
	if cmd.Flags().Changed("lon") {
		lon, _ := cmd.Flags().GetFloat64("lon")
		query.Lon = &lon
	}
	if cmd.Flags().Changed("radius") {
		radius, _ := cmd.Flags().GetInt("radius")
		query.RadiusKm = &radius
	}
	if cmd.Flags().Changed("city") {
		cityID, _ := cmd.Flags().GetInt64("city")
		query.CityID = &cityID
	}

	response, err := srch.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := response.Results
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table":
		printResultsTable(results)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "%d results (%s match) in %s\n",
		len(response.Results), response.Phase, response.Duration)
	return nil
}

// openEngine builds the search engine from the loaded configuration.
func openEngine() (*searcher.Searcher, storage.Storage, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".neighbourhood", "catalog.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	var boundaries []region.Boundary
	if cfg.BoundariesPath != "" {
		boundaries, err = region.LoadFile(cfg.BoundariesPath)
		if err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to load region boundaries: %w", err)
		}
	}
	resolver := region.NewResolver(boundaries, cfg.DefaultRadiiKm)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srch, err := searcher.New(store, resolver,
		searcher.WithLogger(logger),
		searcher.WithTimeout(cfg.SearchTimeout),
		searcher.WithCacheTTL(cfg.CacheTTL),
	)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return srch, store, nil
}

func printResultsTable(results []types.SearchResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tPRICE\tSTORE\tMARKET\tCITY\tSTATE\tRATING\tDISTANCE")
	for _, r := range results {
		rating := "-"
		if r.AvgRating != nil {
			rating = fmt.Sprintf("%.2f", *r.AvgRating)
		}
		distance := "-"
		if r.DistanceKm != nil {
			distance = fmt.Sprintf("%.2f km", *r.DistanceKm)
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ProductName, r.Price, r.StoreName, r.MarketArea, r.City, r.State, rating, distance)
	}
	w.Flush()
}
