package products

import (
	"net/http"

	"go.appointy.com/subgraph"
	"go.appointy.com/subgraph/federation"
	"go.appointy.com/subgraph/schemabuilder"
)

// GetGraphqlServer builds the products subgraph and returns the handler for
// the /graphql route.
func GetGraphqlServer() (http.Handler, error) {
	sb := schemabuilder.NewSchema()
	server := NewServer()

	RegisterSchema(sb, server)

	schema, err := federation.BuildSchema(sb)
	if err != nil {
		return nil, err
	}

	return subgraph.HTTPHandler(schema), nil
}
