package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchPricesTool returns the tool definition for search_prices
func searchPricesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_prices",
		Description: "Search product price listings across stores by name, with optional location filtering and ranking",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Product name to search for (case-insensitive; prefix match with substring fallback)",
				},
				"sort_by": map[string]interface{}{
					"type":        "string",
					"description": "Ranking strategy for results",
					"enum":        []string{"price_asc", "price_desc", "rating_desc", "distance_asc"},
					"default":     "price_asc",
				},
				"lat": map[string]interface{}{
					"type":        "number",
					"description": "Searcher latitude (WGS84); must be supplied together with lon",
				},
				"lon": map[string]interface{}{
					"type":        "number",
					"description": "Searcher longitude (WGS84); must be supplied together with lat",
				},
				"radius_km": map[string]interface{}{
					"type":        "integer",
					"description": "Search radius in kilometres; requires lat/lon. Defaults to the searcher's region radius",
					"minimum":     1,
				},
				"city_id": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict results to one city; ignored when coordinates are supplied",
				},
			},
			Required: []string{"query"},
		},
	}
}

// productPricesTool returns the tool definition for product_prices
func productPricesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "product_prices",
		Description: "List every price listing of one product, with the same location filtering and ranking as search_prices",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"product_id": map[string]interface{}{
					"type":        "integer",
					"description": "Product identifier",
				},
				"sort_by": map[string]interface{}{
					"type":        "string",
					"description": "Ranking strategy for results",
					"enum":        []string{"price_asc", "price_desc", "rating_desc", "distance_asc"},
					"default":     "price_asc",
				},
				"lat": map[string]interface{}{
					"type":        "number",
					"description": "Searcher latitude (WGS84); must be supplied together with lon",
				},
				"lon": map[string]interface{}{
					"type":        "number",
					"description": "Searcher longitude (WGS84); must be supplied together with lat",
				},
				"radius_km": map[string]interface{}{
					"type":        "integer",
					"description": "Search radius in kilometres; requires lat/lon",
					"minimum":     1,
				},
				"city_id": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict results to one city; ignored when coordinates are supplied",
				},
			},
			Required: []string{"product_id"},
		},
	}
}

// productByBarcodeTool returns the tool definition for product_by_barcode
func productByBarcodeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "product_by_barcode",
		Description: "Look up a product by its barcode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"barcode": map[string]interface{}{
					"type":        "string",
					"description": "Product barcode (exact match)",
				},
			},
			Required: []string{"barcode"},
		},
	}
}

// nearbyMarketsTool returns the tool definition for nearby_markets
func nearbyMarketsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "nearby_markets",
		Description: "List market areas within a radius of a point, nearest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"lat": map[string]interface{}{
					"type":        "number",
					"description": "Latitude of the search origin (WGS84)",
				},
				"lon": map[string]interface{}{
					"type":        "number",
					"description": "Longitude of the search origin (WGS84)",
				},
				"radius_km": map[string]interface{}{
					"type":        "integer",
					"description": "Search radius in kilometres",
					"default":     10,
					"minimum":     1,
				},
			},
			Required: []string{"lat", "lon"},
		},
	}
}

// listStatesTool returns the tool definition for list_states
func listStatesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_states",
		Description: "List all states in the catalog",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// listCitiesTool returns the tool definition for list_cities
func listCitiesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_cities",
		Description: "List the cities of one state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"state_id": map[string]interface{}{
					"type":        "integer",
					"description": "State identifier",
				},
			},
			Required: []string{"state_id"},
		},
	}
}

// listMarketsTool returns the tool definition for list_markets
func listMarketsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_markets",
		Description: "List the market areas of one city",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"city_id": map[string]interface{}{
					"type":        "integer",
					"description": "City identifier",
				},
			},
			Required: []string{"city_id"},
		},
	}
}
