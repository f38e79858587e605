package products

import (
	"context"

	"go.appointy.com/subgraph/schemabuilder"
)

// RegisterObjects registers the output objects and their federation
// annotations.
func RegisterObjects(sb *schemabuilder.Schema, s *Server) {
	RegisterProductObject(sb)
	RegisterUserObject(sb, s)
}

// RegisterProductObject registers Product as an entity keyed on upc. The
// shippingEstimate field requires price and weight, which a gateway fetches
// before calling this service.
func RegisterProductObject(sb *schemabuilder.Schema) {
	product := sb.Object("Product", Product{})
	product.Key("upc")

	product.FieldFunc("upc", func(p *Product) string { return p.UPC })
	product.FieldFunc("name", func(p *Product) string { return p.Name })
	product.FieldFunc("price", func(p *Product) int32 { return p.Price })
	product.FieldFunc("weight", func(p *Product) int32 { return p.Weight })
	product.FieldFunc("in_stock", func(p *Product) bool { return p.InStock })
	product.FieldFunc("category", func(p *Product) Category { return p.Category })
	product.FieldFunc("added_at", func(p *Product) *schemabuilder.Timestamp { return p.AddedAt })

	product.FieldFunc("shipping_estimate", func(p *Product) int32 {
		// Free shipping over 1000, otherwise estimate by weight.
		if p.Price > 1000 {
			return 0
		}
		return p.Weight / 2
	})
	product.Requires("shipping_estimate", "price weight")
}

// RegisterUserObject extends the accounts service's User with the purchases
// field. id is external; purchases provides each product's name so the
// gateway can skip a round trip for it.
func RegisterUserObject(sb *schemabuilder.Schema, s *Server) {
	user := sb.Object("User", User{})
	user.Extend("id")
	user.External("id")

	user.FieldFunc("id", func(u *User) schemabuilder.ID { return u.ID })
	user.FieldFunc("purchases", func(ctx context.Context, u *User) []*Product {
		upcs := s.purchases[u.ID.Value]
		out := make([]*Product, 0, len(upcs))
		for _, upc := range upcs {
			if p := s.productByUPC(upc); p != nil {
				out = append(out, p)
			}
		}
		return out
	})
	user.Provides("purchases", "name")
}
