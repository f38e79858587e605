package products

import (
	"context"

	"go.appointy.com/subgraph/schemabuilder"
)

// RegisterSchema registers every type and operation of the products service
// onto the given schema.
func RegisterSchema(sb *schemabuilder.Schema, s *Server) {
	RegisterEnums(sb)
	RegisterObjects(sb, s)
	RegisterInputs(sb)

	RegisterQuery(sb, s)
	RegisterMutation(sb, s)

	registerReferenceResolvers(sb, s)
}

// registerReferenceResolvers installs the reference resolvers the _entities
// field dispatches to. Product looks the representation up in the store so
// the gateway gets the full record back; User has no local store and keeps
// the default constructor.
func registerReferenceResolvers(sb *schemabuilder.Schema, s *Server) {
	product := sb.Object("Product", Product{})
	product.ResolveReference(func(ctx context.Context, rep map[string]interface{}) (interface{}, error) {
		upc, _ := rep["upc"].(string)
		if p := s.productByUPC(upc); p != nil {
			return p, nil
		}
		return nil, nil
	})
}
