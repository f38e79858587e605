package products

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go.appointy.com/subgraph/schemabuilder"
)

// RegisterMutation registers the mutation fields.
func RegisterMutation(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("create_product", func(ctx context.Context, args struct {
		Input CreateProductInput
	}) *Product {
		now := time.Now()
		p := &Product{
			UPC:      uuid.New().String(),
			Name:     args.Input.Name,
			Price:    args.Input.Price,
			Weight:   args.Input.Weight,
			InStock:  true,
			Category: args.Input.Category,
			AddedAt: &schemabuilder.Timestamp{
				Seconds: now.Unix(),
				Nanos:   int32(now.Nanosecond()),
			},
		}
		s.products = append(s.products, p)
		return p
	}, schemabuilder.FieldDesc("Adds a product to the catalog."))
}
