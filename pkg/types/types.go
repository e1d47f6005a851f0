package types

import "time"

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// State is the top of the location hierarchy. Its name matches the boundary
// dataset's region names so search results can be flagged out-of-state.
type State struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// City belongs to exactly one State.
type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"state_id"`
}

// MarketArea is a named physical marketplace with a single WGS84 point.
type MarketArea struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	CityID int64   `json:"city_id"`
}

// Store belongs to exactly one MarketArea. Ownership is tracked for the
// inventory collaborators; search never reads it.
type Store struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MarketAreaID int64  `json:"market_area_id"`
	OwnerID      *int64 `json:"owner_id,omitempty"`
}

// Product is immutable once created and referenced by many prices and reviews.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Barcode  *string `json:"barcode,omitempty"`
	ImageRef *string `json:"image_ref,omitempty"`
}

// Price is one listing: one store's offer of one product. The model allows
// duplicate (product, store) rows; callers must not assume uniqueness.
type Price struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	StoreID    int64     `json:"store_id"`
	Amount     float64   `json:"price"`
	StockLevel int       `json:"stock_level"`
	Timestamp  time.Time `json:"timestamp"`
}

// Review is a rating of a product as sold by a specific store. Ratings
// aggregate per (product, store) pair, not per product alone.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	StoreID   int64     `json:"store_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchQuery describes one price search. Lat and Lon must be supplied
// together. RadiusKm requires coordinates; when both a radius and a city
// filter are present the radius takes precedence.
type SearchQuery struct {
	Text     string       `json:"text"`
	SortBy   SortStrategy `json:"sort_by"`
	Lat      *float64     `json:"lat,omitempty"`
	Lon      *float64     `json:"lon,omitempty"`
	RadiusKm *int         `json:"radius_km,omitempty"`
	CityID   *int64       `json:"city_id,omitempty"`
}

// HasCoordinates reports whether the query carries a complete coordinate pair.
func (q SearchQuery) HasCoordinates() bool {
	return q.Lat != nil && q.Lon != nil
}

// SearchResult is one enriched listing row. The shape is identical across
// query modes: AvgRating is nil when the pair has no reviews, DistanceKm and
// IsOutOfState are nil when the query carried no coordinates, and IsOutOfState
// stays nil (not false) when the searcher's own region could not be resolved.
type SearchResult struct {
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ImageRef     *string   `json:"image_ref,omitempty"`
	Price        float64   `json:"price"`
	StoreID      int64     `json:"store_id"`
	StoreName    string    `json:"store_name"`
	MarketArea   string    `json:"market_area"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Timestamp    time.Time `json:"timestamp"`
	StockLevel   int       `json:"stock_level"`
	AvgRating    *float64  `json:"avg_rating"`
	DistanceKm   *float64  `json:"distance_km"`
	IsOutOfState *bool     `json:"is_out_of_state"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
}

// NearbyMarket is one market area within a radius query, nearest first.
type NearbyMarket struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city_name"`
	State      string  `json:"state_name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}
