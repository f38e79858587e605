package products

import (
	"go.appointy.com/subgraph/schemabuilder"
)

// Product is the entity this service owns. Other services reference it by
// its upc key.
type Product struct {
	UPC      string                   `graphql:"upc"`
	Name     string                   `graphql:"name"`
	Price    int32                    `graphql:"price"`
	Weight   int32                    `graphql:"weight"`
	InStock  bool                     `graphql:"inStock"`
	Category Category                 `graphql:"category"`
	AddedAt  *schemabuilder.Timestamp `graphql:"addedAt"`
}

// Category enum type (string underlying).
type Category string

const (
	CategoryFurniture   Category = "FURNITURE"
	CategoryElectronics Category = "ELECTRONICS"
	CategoryGrocery     Category = "GROCERY"
)

// User is owned by the accounts service. This service extends it with the
// purchases field; id is resolved by the owning service.
type User struct {
	ID        schemabuilder.ID `graphql:"id"`
	Purchases []*Product       `graphql:"purchases"`
}

// CreateProductInput for the createProduct mutation.
type CreateProductInput struct {
	Name     string
	Price    int32
	Weight   int32
	Category Category
}

// Server is an in-memory store backing the resolvers.
type Server struct {
	products  []*Product
	purchases map[string][]string
}

// NewServer creates a Server with seed data.
func NewServer() *Server {
	return &Server{
		products: []*Product{
			{
				UPC:      "top-1",
				Name:     "Table",
				Price:    899,
				Weight:   100,
				InStock:  true,
				Category: CategoryFurniture,
			},
			{
				UPC:      "top-2",
				Name:     "Couch",
				Price:    1299,
				Weight:   1000,
				InStock:  false,
				Category: CategoryFurniture,
			},
			{
				UPC:      "top-3",
				Name:     "Chair",
				Price:    54,
				Weight:   50,
				InStock:  true,
				Category: CategoryFurniture,
			},
		},
		purchases: map[string][]string{
			"u1": {"top-1", "top-3"},
			"u2": {"top-2"},
		},
	}
}

func (s *Server) productByUPC(upc string) *Product {
	for _, p := range s.products {
		if p.UPC == upc {
			return p
		}
	}
	return nil
}
