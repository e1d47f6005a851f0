package searcher

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mustaphathe3rd/neighbourhood/internal/geo"
	"github.com/mustaphathe3rd/neighbourhood/internal/rating"
	"github.com/mustaphathe3rd/neighbourhood/internal/region"
	"github.com/mustaphathe3rd/neighbourhood/internal/storage"
	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

const (
	// DefaultTimeout bounds one search request end to end. Catalog-wide
	// substring scans in particular must not run unbounded.
	DefaultTimeout = 5 * time.Second

	// DefaultCacheTTL is how long a cached response stays valid.
	DefaultCacheTTL = 5 * time.Minute

	// cacheSize is the LRU entry limit for cached responses.
	cacheSize = 1000
)

// MatchPhase identifies which text-matching phase satisfied a query.
type MatchPhase string

const (
	// PhaseNone means neither phase found candidates (empty result).
	PhaseNone MatchPhase = "none"
	// PhasePrefix means the case-insensitive starts-with phase matched.
	PhasePrefix MatchPhase = "prefix"
	// PhaseSubstring means the contains fallback phase matched.
	PhaseSubstring MatchPhase = "substring"
)

// Response contains ordered search results and request metadata.
type Response struct {
	Results  []types.SearchResult
	Phase    MatchPhase
	Region   *string // resolved searcher region, nil when unresolved
	Duration time.Duration
	CacheHit bool
}

// cacheEntry represents a cached response with expiration time
type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// Searcher orchestrates the search pipeline over read-only catalog data.
// It is safe for concurrent use; identical in-flight requests are coalesced.
type Searcher struct {
	storage  storage.Storage
	regions  *region.Resolver
	timeout  time.Duration
	cacheTTL time.Duration
	cache    *lru.Cache[[32]byte, *cacheEntry]
	cacheMu  sync.RWMutex
	flight   singleflight.Group
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCacheTTL overrides how long cached responses stay valid.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Searcher) {
		if d > 0 {
			s.cacheTTL = d
		}
	}
}

// New creates a Searcher over the given catalog storage and region resolver.
func New(store storage.Storage, regions *region.Resolver, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStorageRequired
	}
	if regions == nil {
		return nil, ErrResolverRequired
	}

	cache, err := lru.New[[32]byte, *cacheEntry](cacheSize)
	if err != nil {
		// This should never happen with valid size parameter
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}

	s := &Searcher{
		storage:  store,
		regions:  regions,
		timeout:  DefaultTimeout,
		cacheTTL: DefaultCacheTTL,
		cache:    cache,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search runs the full pipeline for one query and returns the ordered result
// list. No matches at either phase is a success with an empty list, never an
// error.
func (s *Searcher) Search(ctx context.Context, query types.SearchQuery) (*Response, error) {
	startTime := time.Now()

	query, err := s.validateQuery(query)
	if err != nil {
		return nil, err
	}

	hash := hashQuery(query)
	if cached := s.checkCache(hash); cached != nil {
		cached.CacheHit = true
		cached.Duration = time.Since(startTime)
		return cached, nil
	}

	// Coalesce identical concurrent requests: the catalog is read-only, so
	// followers can safely share the leader's response.
	v, err, _ := s.flight.Do(flightKey(hash), func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.execute(ctx, query, nil)
	})
	if err != nil {
		return nil, s.classify(err)
	}

	response := copyResponse(v.(*Response))
	response.Duration = time.Since(startTime)
	if len(response.Results) > 0 {
		s.storeInCache(hash, response)
	}
	return response, nil
}

// ListingsForProduct returns every listing of one product, filtered and
// enriched with the same structural semantics as Search (radius wins over
// city when coordinates are present). query.Text is ignored.
func (s *Searcher) ListingsForProduct(ctx context.Context, productID int64, query types.SearchQuery) (*Response, error) {
	startTime := time.Now()

	query.Text = ""
	query, err := s.validateQuery(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.execute(ctx, query, &productID)
	if err != nil {
		return nil, s.classify(err)
	}
	response.Duration = time.Since(startTime)
	return response, nil
}

// NearbyMarkets returns market areas within radiusKm of the given point,
// nearest first.
func (s *Searcher) NearbyMarkets(ctx context.Context, lat, lon float64, radiusKm int) ([]types.NearbyMarket, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", types.ErrInvalidQuery)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.storage.ListMarketAreas(ctx)
	if err != nil {
		return nil, s.classify(err)
	}

	origin := geo.Point{Lat: lat, Lon: lon}
	markets := make([]types.NearbyMarket, 0, len(rows))
	for _, row := range rows {
		d, ok := geo.WithinRadius(origin, geo.Point{Lat: row.Lat, Lon: row.Lon}, float64(radiusKm))
		if !ok {
			continue
		}
		markets = append(markets, types.NearbyMarket{
			ID:         row.ID,
			Name:       row.Name,
			City:       row.City,
			State:      row.State,
			Lat:        row.Lat,
			Lon:        row.Lon,
			DistanceKm: round2(d),
		})
	}
	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].DistanceKm < markets[j].DistanceKm
	})
	return markets, nil
}

// candidate is one structural match, carrying its distance when the query
// supplied coordinates.
type candidate struct {
	row        storage.ListingRow
	distanceKm *float64
}

// execute runs the pipeline stages after validation. productID narrows the
// structural query to one product (ListingsForProduct).
func (s *Searcher) execute(ctx context.Context, query types.SearchQuery, productID *int64) (*Response, error) {
	var userRegion *string
	var origin *geo.Point
	radiusKm := 0

	if query.HasCoordinates() {
		origin = &geo.Point{Lat: *query.Lat, Lon: *query.Lon}
		if name, ok := s.regions.Resolve(*origin); ok {
			userRegion = &name
		} else {
			s.logger.Debug("searcher region unresolved",
				"lat", *query.Lat, "lon", *query.Lon)
		}
		switch {
		case query.RadiusKm != nil:
			radiusKm = *query.RadiusKm
		case userRegion != nil:
			radiusKm = s.regions.DefaultRadiusKm(*userRegion)
		default:
			radiusKm = region.FallbackRadiusKm
		}
	}

	candidates, phase, err := s.matchWithFallback(ctx, query, productID, origin, radiusKm)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Response{Results: []types.SearchResult{}, Phase: PhaseNone, Region: userRegion}, nil
	}

	reviews, err := s.storage.ListReviews(ctx, productIDs(candidates))
	if err != nil {
		return nil, err
	}
	means := rating.Aggregate(toRatingReviews(reviews))

	results := make([]types.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, assemble(c, means, userRegion))
	}
	rank(results, query.SortBy, query.HasCoordinates())

	return &Response{Results: results, Phase: phase, Region: userRegion}, nil
}

// matchWithFallback runs the prefix phase and, only when it yields zero
// candidates, re-runs the identical structural query in substring mode. The
// fallback is a full independent re-query, not an expansion of the first set.
func (s *Searcher) matchWithFallback(ctx context.Context, query types.SearchQuery, productID *int64, origin *geo.Point, radiusKm int) ([]candidate, MatchPhase, error) {
	candidates, err := s.queryPhase(ctx, query, storage.MatchPrefix, productID, origin, radiusKm)
	if err != nil {
		return nil, PhaseNone, err
	}
	if len(candidates) > 0 {
		return candidates, PhasePrefix, nil
	}

	candidates, err = s.queryPhase(ctx, query, storage.MatchSubstring, productID, origin, radiusKm)
	if err != nil {
		return nil, PhaseNone, err
	}
	if len(candidates) == 0 {
		return nil, PhaseNone, nil
	}
	return candidates, PhaseSubstring, nil
}

// queryPhase runs one structural query: text match plus either the radius
// cutoff (when coordinates are present) or the city filter. Radius and city
// are mutually exclusive selection modes; radius takes precedence.
func (s *Searcher) queryPhase(ctx context.Context, query types.SearchQuery, mode storage.NameMatch, productID *int64, origin *geo.Point, radiusKm int) ([]candidate, error) {
	filter := storage.ListingFilter{
		NameTerm:  query.Text,
		NameMode:  mode,
		ProductID: productID,
	}
	if origin == nil && query.CityID != nil {
		filter.CityID = query.CityID
	}

	rows, err := s.storage.FindListings(ctx, filter)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(rows))
	for _, row := range rows {
		var dist *float64
		if origin != nil {
			d, ok := geo.WithinRadius(*origin, geo.Point{Lat: row.Lat, Lon: row.Lon}, float64(radiusKm))
			if !ok {
				continue
			}
			rounded := round2(d)
			dist = &rounded
		}
		candidates = append(candidates, candidate{row: row, distanceKm: dist})
	}
	return candidates, nil
}

// validateQuery rejects malformed input before any datastore access and
// fills in the default sort strategy.
func (s *Searcher) validateQuery(query types.SearchQuery) (types.SearchQuery, error) {
	sortBy, err := types.ParseSortStrategy(string(query.SortBy))
	if err != nil {
		return query, err
	}
	query.SortBy = sortBy
	query.Text = strings.TrimSpace(query.Text)

	if (query.Lat == nil) != (query.Lon == nil) {
		return query, fmt.Errorf("%w: incomplete coordinate pair", types.ErrInvalidQuery)
	}
	if query.RadiusKm != nil {
		if *query.RadiusKm <= 0 {
			return query, fmt.Errorf("%w: radius must be positive, got %d", types.ErrInvalidQuery, *query.RadiusKm)
		}
		if !query.HasCoordinates() {
			return query, fmt.Errorf("%w: radius filter requires coordinates", types.ErrInvalidQuery)
		}
	}
	return query, nil
}

// classify maps pipeline failures onto the engine's error taxonomy: deadline
// expiry fails closed as a timeout, caller cancellation passes through, and
// everything else is a repository fault.
func (s *Searcher) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrInvalidQuery):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Error("search exceeded its deadline", "err", err)
		return fmt.Errorf("%w: %v", types.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		s.logger.Error("catalog query failed", "err", err)
		return fmt.Errorf("%w: %v", types.ErrRepository, err)
	}
}

// checkCache returns a copy of a live cached response, or nil.
func (s *Searcher) checkCache(hash [32]byte) *Response {
	now := time.Now()

	s.cacheMu.RLock()
	entry, found := s.cache.Get(hash)
	if !found {
		s.cacheMu.RUnlock()
		return nil
	}
	if now.After(entry.expiresAt) {
		s.cacheMu.RUnlock()
		s.cacheMu.Lock()
		s.cache.Remove(hash)
		s.cacheMu.Unlock()
		return nil
	}
	response := copyResponse(entry.response)
	s.cacheMu.RUnlock()
	return response
}

// storeInCache saves a copy of the response under the request hash.
func (s *Searcher) storeInCache(hash [32]byte, response *Response) {
	entry := &cacheEntry{
		response:  copyResponse(response),
		expiresAt: time.Now().Add(s.cacheTTL),
	}
	s.cacheMu.Lock()
	s.cache.Add(hash, entry)
	s.cacheMu.Unlock()
}

// InvalidateCache drops every cached response. Called when the catalog
// dataset is reloaded.
func (s *Searcher) InvalidateCache() {
	s.cacheMu.Lock()
	s.cache.Purge()
	s.cacheMu.Unlock()
}

// copyResponse creates a deep copy of a Response so cached and coalesced
// callers never share mutable slices.
func copyResponse(src *Response) *Response {
	if src == nil {
		return nil
	}
	dst := &Response{
		Phase:    src.Phase,
		Duration: src.Duration,
		CacheHit: src.CacheHit,
		Results:  make([]types.SearchResult, len(src.Results)),
	}
	copy(dst.Results, src.Results)
	if src.Region != nil {
		regionCopy := *src.Region
		dst.Region = &regionCopy
	}
	return dst
}

// hashQuery computes a deterministic hash over every request field.
func hashQuery(q types.SearchQuery) [32]byte {
	var data strings.Builder
	data.WriteString(strings.ToLower(q.Text))
	data.WriteString("|")
	data.WriteString(string(q.SortBy))
	data.WriteString("|")
	data.WriteString(formatFloatPtr(q.Lat))
	data.WriteString("|")
	data.WriteString(formatFloatPtr(q.Lon))
	data.WriteString("|")
	if q.RadiusKm != nil {
		data.WriteString(strconv.Itoa(*q.RadiusKm))
	}
	data.WriteString("|")
	if q.CityID != nil {
		data.WriteString(strconv.FormatInt(*q.CityID, 10))
	}
	return sha256.Sum256([]byte(data.String()))
}

func flightKey(hash [32]byte) string {
	return string(hash[:])
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func productIDs(candidates []candidate) []int64 {
	seen := make(map[int64]bool, len(candidates))
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c.row.ProductID] {
			seen[c.row.ProductID] = true
			ids = append(ids, c.row.ProductID)
		}
	}
	return ids
}

func toRatingReviews(rows []storage.ReviewRow) []rating.Review {
	reviews := make([]rating.Review, len(rows))
	for i, r := range rows {
		reviews[i] = rating.Review{ProductID: r.ProductID, StoreID: r.StoreID, Rating: r.Rating}
	}
	return reviews
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
