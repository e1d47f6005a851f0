package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mustaphathe3rd/neighbourhood/internal/match"
	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidRating is returned for ratings outside the allowed bounds
	ErrInvalidRating = errors.New("rating out of bounds")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Catalog writes

func (s *SQLiteStorage) CreateState(ctx context.Context, state *types.State) error {
	result, err := s.db.ExecContext(ctx, `INSERT INTO states (name) VALUES (?)`, state.Name)
	if err != nil {
		return fmt.Errorf("failed to create state: %w", err)
	}
	state.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStorage) CreateCity(ctx context.Context, city *types.City) error {
	result, err := s.db.ExecContext(ctx, `INSERT INTO cities (name, state_id) VALUES (?, ?)`,
		city.Name, city.StateID)
	if err != nil {
		return fmt.Errorf("failed to create city: %w", err)
	}
	city.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStorage) CreateMarketArea(ctx context.Context, market *types.MarketArea) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO market_areas (name, lat, lon, city_id) VALUES (?, ?, ?, ?)`,
		market.Name, market.Lat, market.Lon, market.CityID)
	if err != nil {
		return fmt.Errorf("failed to create market area: %w", err)
	}
	market.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStorage) CreateStore(ctx context.Context, store *types.Store) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO stores (name, market_area_id, owner_id) VALUES (?, ?, ?)`,
		store.Name, store.MarketAreaID, store.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	store.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *types.Product) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, category, barcode, image_ref) VALUES (?, ?, ?, ?)`,
		product.Name, product.Category, product.Barcode, product.ImageRef)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStorage) CreatePrice(ctx context.Context, price *types.Price) error {
	if price.Timestamp.IsZero() {
		price.Timestamp = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO prices (product_id, store_id, price, stock_level, timestamp) VALUES (?, ?, ?, ?, ?)`,
		price.ProductID, price.StoreID, price.Amount, price.StockLevel, price.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create price: %w", err)
	}
	price.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStorage) CreateReview(ctx context.Context, review *types.Review) error {
	if review.Rating < types.MinRating || review.Rating > types.MaxRating {
		return fmt.Errorf("%w: %d", ErrInvalidRating, review.Rating)
	}
	if review.Timestamp.IsZero() {
		review.Timestamp = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (product_id, store_id, user_id, rating, comment, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		review.ProductID, review.StoreID, review.UserID, review.Rating, review.Comment, review.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	review.ID, err = result.LastInsertId()
	return err
}

// Location lookups

func (s *SQLiteStorage) ListStates(ctx context.Context) ([]types.State, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM states ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	var states []types.State
	for rows.Next() {
		var st types.State
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, rows.Err()
}

func (s *SQLiteStorage) ListCitiesByState(ctx context.Context, stateID int64) ([]types.City, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, state_id FROM cities WHERE state_id = ? ORDER BY name`, stateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []types.City
	for rows.Next() {
		var c types.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (s *SQLiteStorage) ListMarketAreasByCity(ctx context.Context, cityID int64) ([]types.MarketArea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, lat, lon, city_id FROM market_areas WHERE city_id = ? ORDER BY name`, cityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list market areas: %w", err)
	}
	defer rows.Close()

	var markets []types.MarketArea
	for rows.Next() {
		var m types.MarketArea
		if err := rows.Scan(&m.ID, &m.Name, &m.Lat, &m.Lon, &m.CityID); err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

func (s *SQLiteStorage) ListMarketAreas(ctx context.Context) ([]MarketAreaRow, error) {
	query := `
		SELECT m.id, m.name, m.lat, m.lon, c.name, st.name
		FROM market_areas m
		JOIN cities c ON c.id = m.city_id
		JOIN states st ON st.id = c.state_id
		ORDER BY m.id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list market areas: %w", err)
	}
	defer rows.Close()

	var markets []MarketAreaRow
	for rows.Next() {
		var m MarketAreaRow
		if err := rows.Scan(&m.ID, &m.Name, &m.Lat, &m.Lon, &m.City, &m.State); err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

// Product lookups

func (s *SQLiteStorage) GetProductByBarcode(ctx context.Context, barcode string) (*types.Product, error) {
	var p types.Product
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, barcode, image_ref FROM products WHERE barcode = ?`, barcode).
		Scan(&p.ID, &p.Name, &p.Category, &p.Barcode, &p.ImageRef)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by barcode: %w", err)
	}
	return &p, nil
}

// Search reads

// FindListings returns flat joined listing rows matching the filter, ordered
// by price id so downstream stable sorting is reproducible.
func (s *SQLiteStorage) FindListings(ctx context.Context, filter ListingFilter) ([]ListingRow, error) {
	var pattern string
	switch filter.NameMode {
	case MatchSubstring:
		pattern = match.SubstringPattern(filter.NameTerm)
	default:
		pattern = match.PrefixPattern(filter.NameTerm)
	}

	query := `
		SELECT pr.id, p.id, p.name, p.category, p.image_ref,
		       s.id, s.name,
		       m.id, m.name, m.lat, m.lon,
		       c.id, c.name, st.name,
		       pr.price, pr.stock_level, pr.timestamp
		FROM prices pr
		JOIN products p ON p.id = pr.product_id
		JOIN stores s ON s.id = pr.store_id
		JOIN market_areas m ON m.id = s.market_area_id
		JOIN cities c ON c.id = m.city_id
		JOIN states st ON st.id = c.state_id
		WHERE lower(p.name) LIKE ? ESCAPE '\'
	`
	args := []interface{}{pattern}

	if filter.ProductID != nil {
		query += " AND pr.product_id = ?"
		args = append(args, *filter.ProductID)
	}
	if filter.CityID != nil {
		query += " AND m.city_id = ?"
		args = append(args, *filter.CityID)
	}
	query += " ORDER BY pr.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}
	defer rows.Close()

	var listings []ListingRow
	for rows.Next() {
		var l ListingRow
		err := rows.Scan(
			&l.PriceID, &l.ProductID, &l.ProductName, &l.Category, &l.ImageRef,
			&l.StoreID, &l.StoreName,
			&l.MarketAreaID, &l.MarketArea, &l.Lat, &l.Lon,
			&l.CityID, &l.City, &l.State,
			&l.Price, &l.StockLevel, &l.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// ListReviews returns rating triples for the given products across all
// stores. An empty id set returns no rows.
func (s *SQLiteStorage) ListReviews(ctx context.Context, productIDs []int64) ([]ReviewRow, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(productIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(
		`SELECT product_id, store_id, rating FROM reviews WHERE product_id IN (%s)`, placeholders)

	args := make([]interface{}, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []ReviewRow
	for rows.Next() {
		var r ReviewRow
		if err := rows.Scan(&r.ProductID, &r.StoreID, &r.Rating); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
