package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mustaphathe3rd/neighbourhood/internal/searcher"
	"github.com/mustaphathe3rd/neighbourhood/internal/storage"
	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeProductNotFound = -32001 // No product matches the given identifier
	ErrorCodeSearchTimeout   = -32002 // Search exceeded its deadline
	ErrorCodeEmptyQuery      = -32004 // Query parameter is empty
)

// handleSearchPrices handles the search_prices tool invocation
func (s *Server) handleSearchPrices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["query"].(string)
	if !ok || text == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	query, err := queryFromArgs(args)
	if err != nil {
		return nil, err
	}
	query.Text = text

	response, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, s.searchError(err)
	}

	return mcp.NewToolResultText(formatJSON(searchResponseBody(response))), nil
}

// handleProductPrices handles the product_prices tool invocation
func (s *Server) handleProductPrices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	productID, ok := getInt64(args, "product_id")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "product_id parameter is required", map[string]interface{}{
			"param":  "product_id",
			"reason": "missing or not an integer",
		})
	}

	query, err := queryFromArgs(args)
	if err != nil {
		return nil, err
	}

	response, err := s.searcher.ListingsForProduct(ctx, productID, query)
	if err != nil {
		return nil, s.searchError(err)
	}

	return mcp.NewToolResultText(formatJSON(searchResponseBody(response))), nil
}

// handleProductByBarcode handles the product_by_barcode tool invocation
func (s *Server) handleProductByBarcode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	barcode, ok := args["barcode"].(string)
	if !ok || barcode == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "barcode parameter is required", map[string]interface{}{
			"param":  "barcode",
			"reason": "missing or empty",
		})
	}

	product, err := s.storage.GetProductByBarcode(ctx, barcode)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeProductNotFound, "no product with this barcode", map[string]interface{}{
			"barcode": barcode,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "barcode lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"product": product,
	})), nil
}

// handleNearbyMarkets handles the nearby_markets tool invocation
func (s *Server) handleNearbyMarkets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	lat, latOK := getFloat(args, "lat")
	lon, lonOK := getFloat(args, "lon")
	if !latOK || !lonOK {
		return nil, newMCPError(ErrorCodeInvalidParams, "lat and lon parameters are required", map[string]interface{}{
			"params": []string{"lat", "lon"},
			"reason": "missing or not numbers",
		})
	}

	radiusKm := getIntDefault(args, "radius_km", 10)

	markets, err := s.searcher.NearbyMarkets(ctx, lat, lon, radiusKm)
	if err != nil {
		return nil, s.searchError(err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"markets": markets,
		"count":   len(markets),
	})), nil
}

// handleListStates handles the list_states tool invocation
func (s *Server) handleListStates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	states, err := s.storage.ListStates(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list states", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"states": states,
		"count":  len(states),
	})), nil
}

// handleListCities handles the list_cities tool invocation
func (s *Server) handleListCities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	stateID, ok := getInt64(args, "state_id")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "state_id parameter is required", map[string]interface{}{
			"param":  "state_id",
			"reason": "missing or not an integer",
		})
	}

	cities, err := s.storage.ListCitiesByState(ctx, stateID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list cities", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"cities": cities,
		"count":  len(cities),
	})), nil
}

// handleListMarkets handles the list_markets tool invocation
func (s *Server) handleListMarkets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	cityID, ok := getInt64(args, "city_id")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "city_id parameter is required", map[string]interface{}{
			"param":  "city_id",
			"reason": "missing or not an integer",
		})
	}

	markets, err := s.storage.ListMarketAreasByCity(ctx, cityID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list market areas", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"markets": markets,
		"count":   len(markets),
	})), nil
}

// Helper functions

// queryFromArgs extracts the optional search parameters shared by
// search_prices and product_prices.
func queryFromArgs(args map[string]interface{}) (types.SearchQuery, error) {
	var query types.SearchQuery

	if sortBy, ok := args["sort_by"].(string); ok {
		query.SortBy = types.SortStrategy(sortBy)
	}
	if lat, ok := getFloat(args, "lat"); ok {
		query.Lat = &lat
	}
	if lon, ok := getFloat(args, "lon"); ok {
		query.Lon = &lon
	}
	if radius, ok := getInt64(args, "radius_km"); ok {
		r := int(radius)
		query.RadiusKm = &r
	}
	if cityID, ok := getInt64(args, "city_id"); ok {
		query.CityID = &cityID
	}
	return query, nil
}

// searchResponseBody shapes one search engine response for the wire.
func searchResponseBody(response *searcher.Response) map[string]interface{} {
	body := map[string]interface{}{
		"results":     response.Results,
		"count":       len(response.Results),
		"match_phase": string(response.Phase),
		"cache_hit":   response.CacheHit,
		"duration_ms": response.Duration.Milliseconds(),
	}
	if response.Region != nil {
		body["region"] = *response.Region
	}
	return body
}

// searchError maps search engine failures onto MCP error codes.
func (s *Server) searchError(err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidQuery):
		return newMCPError(ErrorCodeInvalidParams, "invalid search parameters", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, types.ErrTimeout):
		return newMCPError(ErrorCodeSearchTimeout, "search timed out", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getFloat extracts a numeric parameter
func getFloat(args map[string]interface{}, key string) (float64, bool) {
	if val, ok := args[key].(float64); ok {
		return val, true
	}
	return 0, false
}

// getInt64 extracts an integer parameter (JSON numbers arrive as float64)
func getInt64(args map[string]interface{}, key string) (int64, bool) {
	switch val := args[key].(type) {
	case float64:
		return int64(val), true
	case int:
		return int64(val), true
	case int64:
		return val, true
	}
	return 0, false
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := getInt64(args, key); ok {
		return int(val)
	}
	return defaultValue
}
