package main

import (
	"log"
	"net/http"

	"go.appointy.com/subgraph"
	"go.appointy.com/subgraph/example/products"
)

func main() {
	h, err := products.GetGraphqlServer()
	if err != nil {
		log.Fatalf("Failed to get GraphQL server: %v", err)
	}

	http.Handle("/graphql", h)
	http.Handle("/", subgraph.PlaygroundHandler("Products Subgraph", "/graphql"))

	log.Println("Server running on :8080")
	log.Println("Playground: http://localhost:8080/")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal(err)
	}
}
