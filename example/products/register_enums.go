package products

import "go.appointy.com/subgraph/schemabuilder"

// RegisterEnums registers the Category enum.
func RegisterEnums(sb *schemabuilder.Schema) {
	sb.Enum(CategoryFurniture, map[string]interface{}{
		"FURNITURE":   CategoryFurniture,
		"ELECTRONICS": CategoryElectronics,
		"GROCERY":     CategoryGrocery,
	}, "Top level product category.")
}
