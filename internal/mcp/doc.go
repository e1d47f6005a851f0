// Package mcp implements the Model Context Protocol (MCP) server for the
// neighbourhood price search engine.
//
// The server exposes the catalog to AI assistants over stdio:
//   - search_prices: search listings by product name with location filtering
//   - product_prices: list every store's price for one product
//   - product_by_barcode: look up a product by barcode
//   - nearby_markets: list market areas within a radius of a point
//   - list_states, list_cities, list_markets: browse the location hierarchy
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// stdout is reserved for protocol messages; the server logs to stderr.
//
// # Tool: search_prices
//
//	Request:
//	{
//	  "name": "search_prices",
//	  "arguments": {
//	    "query": "rice",
//	    "sort_by": "price_asc",
//	    "lat": 4.8156,
//	    "lon": 7.0498,
//	    "radius_km": 20
//	  }
//	}
//
//	Response:
//	{
//	  "results": [
//	    {
//	      "product_name": "Rice 50kg",
//	      "price": 8000,
//	      "store_name": "Mama Nkechi Stores",
//	      "market_area": "Mile 1 Market",
//	      "distance_km": 1.12,
//	      "is_out_of_state": false,
//	      "avg_rating": 4.5
//	    }
//	  ],
//	  "count": 1,
//	  "match_phase": "prefix",
//	  "region": "Rivers",
//	  "cache_hit": false
//	}
//
// # Error Handling
//
// The server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "invalid search parameters",
//	    "data": {"error": "invalid query: radius must be positive, got -5"}
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (malformed query, incomplete coordinates)
//   - -32603: Internal error (database failure)
//   - -32001: Product not found (unknown barcode)
//   - -32002: Search timed out
//   - -32004: Empty query
//
// # MCP Client Configuration
//
// Configure in an MCP client's settings:
//
//	{
//	  "mcpServers": {
//	    "neighbourhood": {
//	      "command": "/usr/local/bin/neighbourhood",
//	      "args": ["serve"],
//	      "env": {
//	        "NEIGHBOURHOOD_DB": "/var/lib/neighbourhood/catalog.db",
//	        "NEIGHBOURHOOD_BOUNDARIES": "/var/lib/neighbourhood/states.geojson"
//	      }
//	    }
//	  }
//	}
package mcp
