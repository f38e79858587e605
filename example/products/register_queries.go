package products

import (
	"context"
	"fmt"

	"go.appointy.com/subgraph/schemabuilder"
)

// RegisterQuery registers the query fields served by this service.
func RegisterQuery(sb *schemabuilder.Schema, s *Server) {
	q := sb.Query()

	q.FieldFunc("top_products", func(ctx context.Context, args struct {
		First *int32
	}) []*Product {
		n := len(s.products)
		if args.First != nil && int(*args.First) < n {
			n = int(*args.First)
		}
		return s.products[:n]
	}, schemabuilder.FieldDesc("Top products, most popular first."))

	q.FieldFunc("product", func(ctx context.Context, args struct {
		UPC string `graphql:"upc"`
	}) (*Product, error) {
		if p := s.productByUPC(args.UPC); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("product %q not found", args.UPC)
	}, schemabuilder.FieldDesc("Fetch a product by upc."))
}
