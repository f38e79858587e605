package products_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"go.appointy.com/subgraph/example/products"
)

func TestGetGraphqlServer(t *testing.T) {
	h, err := products.GetGraphqlServer()
	require.NoError(t, err)
	require.NotNil(t, h)

	server := httptest.NewServer(h)
	defer server.Close()

	postQuery := func(query string, variables map[string]interface{}) map[string]interface{} {
		reqBody, err := json.Marshal(map[string]interface{}{
			"query":     query,
			"variables": variables,
		})
		require.NoError(t, err)

		resp, err := http.Post(server.URL, "application/json", bytes.NewReader(reqBody))
		require.NoError(t, err)
		defer resp.Body.Close()

		var result map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Nil(t, result["errors"], "GraphQL errors: %v", result["errors"])
		return result["data"].(map[string]interface{})
	}

	// Service document lists the entities with their federation annotations
	// and none of the gateway scaffolding.
	data := postQuery(`{ _service { sdl } }`, nil)
	sdl := data["_service"].(map[string]interface{})["sdl"].(string)
	require.Contains(t, sdl, `type Product @key(fields: "upc") {`)
	require.Contains(t, sdl, `extend type User @key(fields: "id") {`)
	require.Contains(t, sdl, "  id: ID @external")
	require.Contains(t, sdl, `  purchases: [Product] @provides(fields: "name")`)
	require.Contains(t, sdl, `  shippingEstimate: Int @requires(fields: "price weight")`)
	require.NotContains(t, sdl, "_Entity")
	require.NotContains(t, sdl, "_service")

	// Seeded catalog, most popular first.
	data = postQuery(`{ topProducts(first: 2) { upc name price } }`, nil)
	top := data["topProducts"].([]interface{})
	require.Len(t, top, 2)
	first := top[0].(map[string]interface{})
	require.Equal(t, "top-1", first["upc"])
	require.Equal(t, "Table", first["name"])

	// Entity resolution through _entities, in representation order.
	data = postQuery(`
query ($representations: [_Any]!) {
	_entities(representations: $representations) {
		... on Product { upc name shippingEstimate }
		... on User { id purchases { name } }
	}
}`, map[string]interface{}{
		"representations": []interface{}{
			map[string]interface{}{"__typename": "Product", "upc": "top-3"},
			map[string]interface{}{"__typename": "User", "id": "u1"},
		},
	})
	entities := data["_entities"].([]interface{})
	require.Len(t, entities, 2)

	chair := entities[0].(map[string]interface{})
	require.Equal(t, "Chair", chair["name"])
	require.Equal(t, float64(25), chair["shippingEstimate"])

	user := entities[1].(map[string]interface{})
	require.Equal(t, "u1", user["id"])
	names := []string{}
	for _, p := range user["purchases"].([]interface{}) {
		names = append(names, p.(map[string]interface{})["name"].(string))
	}
	require.Equal(t, []string{"Table", "Chair"}, names)

	// createProduct assigns a upc and stores the product.
	data = postQuery(`
mutation {
	createProduct(input: {name: "Lamp", price: 49, weight: 10, category: ELECTRONICS}) {
		upc
		name
		inStock
		category
	}
}`, nil)
	created := data["createProduct"].(map[string]interface{})
	require.NotEmpty(t, created["upc"])
	require.Equal(t, "Lamp", created["name"])
	require.Equal(t, true, created["inStock"])
	require.Equal(t, "ELECTRONICS", created["category"])

	data = postQuery(`{ product(upc: "`+created["upc"].(string)+`") { name } }`, nil)
	require.Equal(t, "Lamp", data["product"].(map[string]interface{})["name"])
}
