package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustaphathe3rd/neighbourhood/internal/config"
	"github.com/mustaphathe3rd/neighbourhood/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")

	server, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func seedTestCatalog(t *testing.T, s *Server) (types.State, types.City, types.Product) {
	t.Helper()
	ctx := context.Background()

	state := types.State{Name: "Rivers"}
	require.NoError(t, s.storage.CreateState(ctx, &state))

	city := types.City{Name: "Port Harcourt", StateID: state.ID}
	require.NoError(t, s.storage.CreateCity(ctx, &city))

	market := types.MarketArea{Name: "Mile 1 Market", Lat: 4.80, Lon: 7.01, CityID: city.ID}
	require.NoError(t, s.storage.CreateMarketArea(ctx, &market))

	store := types.Store{Name: "Mama Nkechi Stores", MarketAreaID: market.ID}
	require.NoError(t, s.storage.CreateStore(ctx, &store))

	barcode := "615104020202"
	product := types.Product{Name: "Rice 50kg", Category: "grains", Barcode: &barcode}
	require.NoError(t, s.storage.CreateProduct(ctx, &product))

	price := types.Price{ProductID: product.ID, StoreID: store.ID, Amount: 8000, StockLevel: 3}
	require.NoError(t, s.storage.CreatePrice(ctx, &price))

	return state, city, product
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultBody(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool result should be text content")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	return body
}

func assertMCPErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, code, mcpErr.Code)
}

func TestSearchPricesTool(t *testing.T) {
	server := newTestServer(t)
	seedTestCatalog(t, server)
	ctx := context.Background()

	result, err := server.handleSearchPrices(ctx, toolRequest("search_prices", map[string]interface{}{
		"query": "rice",
	}))
	require.NoError(t, err)

	body := resultBody(t, result)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "prefix", body["match_phase"])

	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Rice 50kg", first["product_name"])
	assert.Equal(t, float64(8000), first["price"])
	assert.Equal(t, "Mama Nkechi Stores", first["store_name"])
}

func TestSearchPricesToolValidation(t *testing.T) {
	server := newTestServer(t)
	seedTestCatalog(t, server)
	ctx := context.Background()

	t.Run("MissingQuery", func(t *testing.T) {
		_, err := server.handleSearchPrices(ctx, toolRequest("search_prices", map[string]interface{}{}))
		assertMCPErrorCode(t, err, ErrorCodeEmptyQuery)
	})

	t.Run("NegativeRadius", func(t *testing.T) {
		_, err := server.handleSearchPrices(ctx, toolRequest("search_prices", map[string]interface{}{
			"query":     "rice",
			"lat":       4.80,
			"lon":       7.01,
			"radius_km": float64(-5),
		}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})

	t.Run("IncompleteCoordinates", func(t *testing.T) {
		_, err := server.handleSearchPrices(ctx, toolRequest("search_prices", map[string]interface{}{
			"query": "rice",
			"lat":   4.80,
		}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})

	t.Run("UnknownSort", func(t *testing.T) {
		_, err := server.handleSearchPrices(ctx, toolRequest("search_prices", map[string]interface{}{
			"query":   "rice",
			"sort_by": "cheapest",
		}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})
}

func TestProductPricesTool(t *testing.T) {
	server := newTestServer(t)
	_, _, product := seedTestCatalog(t, server)
	ctx := context.Background()

	result, err := server.handleProductPrices(ctx, toolRequest("product_prices", map[string]interface{}{
		"product_id": float64(product.ID),
	}))
	require.NoError(t, err)

	body := resultBody(t, result)
	assert.Equal(t, float64(1), body["count"])

	t.Run("MissingProductID", func(t *testing.T) {
		_, err := server.handleProductPrices(ctx, toolRequest("product_prices", map[string]interface{}{}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})
}

func TestProductByBarcodeTool(t *testing.T) {
	server := newTestServer(t)
	seedTestCatalog(t, server)
	ctx := context.Background()

	result, err := server.handleProductByBarcode(ctx, toolRequest("product_by_barcode", map[string]interface{}{
		"barcode": "615104020202",
	}))
	require.NoError(t, err)

	body := resultBody(t, result)
	product, ok := body["product"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Rice 50kg", product["name"])

	t.Run("UnknownBarcode", func(t *testing.T) {
		_, err := server.handleProductByBarcode(ctx, toolRequest("product_by_barcode", map[string]interface{}{
			"barcode": "000000000000",
		}))
		assertMCPErrorCode(t, err, ErrorCodeProductNotFound)
	})

	t.Run("MissingBarcode", func(t *testing.T) {
		_, err := server.handleProductByBarcode(ctx, toolRequest("product_by_barcode", map[string]interface{}{}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})
}

func TestNearbyMarketsTool(t *testing.T) {
	server := newTestServer(t)
	seedTestCatalog(t, server)
	ctx := context.Background()

	result, err := server.handleNearbyMarkets(ctx, toolRequest("nearby_markets", map[string]interface{}{
		"lat": 4.80,
		"lon": 7.02,
	}))
	require.NoError(t, err)

	body := resultBody(t, result)
	assert.Equal(t, float64(1), body["count"])

	t.Run("MissingCoordinates", func(t *testing.T) {
		_, err := server.handleNearbyMarkets(ctx, toolRequest("nearby_markets", map[string]interface{}{
			"lat": 4.80,
		}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})

	t.Run("InvalidRadius", func(t *testing.T) {
		_, err := server.handleNearbyMarkets(ctx, toolRequest("nearby_markets", map[string]interface{}{
			"lat":       4.80,
			"lon":       7.02,
			"radius_km": float64(-1),
		}))
		assertMCPErrorCode(t, err, ErrorCodeInvalidParams)
	})
}

func TestLocationTools(t *testing.T) {
	server := newTestServer(t)
	state, city, _ := seedTestCatalog(t, server)
	ctx := context.Background()

	t.Run("ListStates", func(t *testing.T) {
		result, err := server.handleListStates(ctx, toolRequest("list_states", nil))
		require.NoError(t, err)
		body := resultBody(t, result)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("ListCities", func(t *testing.T) {
		result, err := server.handleListCities(ctx, toolRequest("list_cities", map[string]interface{}{
			"state_id": float64(state.ID),
		}))
		require.NoError(t, err)
		body := resultBody(t, result)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("ListMarkets", func(t *testing.T) {
		result, err := server.handleListMarkets(ctx, toolRequest("list_markets", map[string]interface{}{
			"city_id": float64(city.ID),
		}))
		require.NoError(t, err)
		body := resultBody(t, result)
		assert.Equal(t, float64(1), body["count"])
	})
}

func TestServerInitialization(t *testing.T) {
	t.Run("DefaultsWhenConfigNil", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")
		server, err := NewServer(cfg)
		require.NoError(t, err)
		defer server.Close()

		assert.NotNil(t, server.mcp)
		assert.NotNil(t, server.storage)
		assert.NotNil(t, server.searcher)
	})

	t.Run("BadBoundariesPathFails", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")
		cfg.BoundariesPath = filepath.Join(t.TempDir(), "missing.geojson")
		_, err := NewServer(cfg)
		assert.Error(t, err)
	})
}
