package storage

import (
	"context"
	"time"

	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

// Storage defines read access to the catalog plus the write operations used
// by dataset loading and tests. The search engine only calls the read side.
type Storage interface {
	// Catalog writes (loading and tests only)
	CreateState(ctx context.Context, state *types.State) error
	CreateCity(ctx context.Context, city *types.City) error
	CreateMarketArea(ctx context.Context, market *types.MarketArea) error
	CreateStore(ctx context.Context, store *types.Store) error
	CreateProduct(ctx context.Context, product *types.Product) error
	CreatePrice(ctx context.Context, price *types.Price) error
	CreateReview(ctx context.Context, review *types.Review) error

	// Location lookups
	ListStates(ctx context.Context) ([]types.State, error)
	ListCitiesByState(ctx context.Context, stateID int64) ([]types.City, error)
	ListMarketAreasByCity(ctx context.Context, cityID int64) ([]types.MarketArea, error)
	ListMarketAreas(ctx context.Context) ([]MarketAreaRow, error)

	// Product lookups
	GetProductByBarcode(ctx context.Context, barcode string) (*types.Product, error)

	// Search reads
	FindListings(ctx context.Context, filter ListingFilter) ([]ListingRow, error)
	ListReviews(ctx context.Context, productIDs []int64) ([]ReviewRow, error)

	// Database operations
	Close() error
}

// NameMatch selects which text-matching phase the structural query applies.
type NameMatch int

const (
	// MatchPrefix matches product names starting with the term.
	MatchPrefix NameMatch = iota
	// MatchSubstring matches product names containing the term anywhere.
	MatchSubstring
)

// ListingFilter narrows FindListings. Geographic radius filtering is not part
// of the structural query; the engine applies it to the returned rows.
type ListingFilter struct {
	NameTerm  string
	NameMode  NameMatch
	CityID    *int64
	ProductID *int64
}

// ListingRow is one price listing joined with its product, store, market
// area, city, and state. Rows come back in a stable order (price id) so the
// engine's stable sort is reproducible across identical queries.
type ListingRow struct {
	PriceID      int64
	ProductID    int64
	ProductName  string
	Category     string
	ImageRef     *string
	StoreID      int64
	StoreName    string
	MarketAreaID int64
	MarketArea   string
	Lat          float64
	Lon          float64
	CityID       int64
	City         string
	State        string
	Price        float64
	StockLevel   int
	Timestamp    time.Time
}

// ReviewRow is the rating triple consumed by the aggregator.
type ReviewRow struct {
	ProductID int64
	StoreID   int64
	Rating    int
}

// MarketAreaRow is a market area joined with its city and state names, used
// by nearby-market queries.
type MarketAreaRow struct {
	ID    int64
	Name  string
	Lat   float64
	Lon   float64
	City  string
	State string
}
