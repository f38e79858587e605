package products

import "go.appointy.com/subgraph/schemabuilder"

// RegisterInputs registers the input objects and their fill functions.
func RegisterInputs(sb *schemabuilder.Schema) {
	input := sb.InputObject("CreateProductInput", CreateProductInput{})

	input.FieldFunc("name", func(in *CreateProductInput, name string) {
		in.Name = name
	})
	input.FieldFunc("price", func(in *CreateProductInput, price int32) {
		in.Price = price
	})
	input.FieldFunc("weight", func(in *CreateProductInput, weight int32) {
		in.Weight = weight
	})
	input.FieldFunc("category", func(in *CreateProductInput, category Category) {
		in.Category = category
	})
}
